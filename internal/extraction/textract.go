package extraction

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	textracttypes "github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractAnalyzer runs Amazon Textract expense analysis on stored objects.
type TextractAnalyzer struct {
	client *textract.Client
}

// NewTextractAnalyzer wraps a Textract client.
func NewTextractAnalyzer(client *textract.Client) *TextractAnalyzer {
	return &TextractAnalyzer{client: client}
}

// AnalyzeExpense asks Textract to analyze the object by reference. Expense
// analysis selects the receipt/invoice field schema instead of generic OCR.
func (a *TextractAnalyzer) AnalyzeExpense(ctx context.Context, bucket, key string) ([]ExpenseDocument, error) {
	out, err := a.client.AnalyzeExpense(ctx, &textract.AnalyzeExpenseInput{
		Document: &textracttypes.Document{
			S3Object: &textracttypes.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("textract analyze expense s3://%s/%s: %w", bucket, key, err)
	}

	docs := make([]ExpenseDocument, 0, len(out.ExpenseDocuments))
	for _, doc := range out.ExpenseDocuments {
		mapped := ExpenseDocument{SummaryFields: make([]SummaryField, 0, len(doc.SummaryFields))}
		for _, field := range doc.SummaryFields {
			var sf SummaryField
			if field.Type != nil {
				sf.Type = aws.ToString(field.Type.Text)
			}
			if field.ValueDetection != nil {
				sf.Value = aws.ToString(field.ValueDetection.Text)
			}
			mapped.SummaryFields = append(mapped.SummaryFields, sf)
		}
		docs = append(docs, mapped)
	}
	return docs, nil
}

var _ ExpenseAnalyzer = (*TextractAnalyzer)(nil)
