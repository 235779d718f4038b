package extraction

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Event is the storage notification delivered when an object is created.
type Event struct {
	Records []Record `json:"Records"`
}

// Record describes one created object within an event.
type Record struct {
	S3 RecordS3 `json:"s3"`
}

// RecordS3 carries the bucket and object references of a record.
type RecordS3 struct {
	Bucket BucketRef `json:"bucket"`
	Object ObjectRef `json:"object"`
}

// BucketRef names the bucket the object was written to.
type BucketRef struct {
	Name string `json:"name"`
}

// ObjectRef names the created object. The key arrives encoded: '+' stands
// for a space and the rest is percent-escaped.
type ObjectRef struct {
	Key string `json:"key"`
}

// ParseEvent decodes a notification payload.
func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// DecodeObjectKey recovers the object key as originally written: literal '+'
// becomes a space, then the remainder is percent-decoded.
func DecodeObjectKey(raw string) (string, error) {
	return url.PathUnescape(strings.ReplaceAll(raw, "+", " "))
}
