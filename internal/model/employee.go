package model

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// PhotoKeyPrefix is the object-store prefix under which employee photos live.
const PhotoKeyPrefix = "photos/"

// Employee is a single directory entry. Records are created once and never
// updated or deleted.
type Employee struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name,omitempty"`
	Title    string `json:"title" dynamodbav:"title,omitempty"`
	Location string `json:"location" dynamodbav:"location,omitempty"`
	Badges   string `json:"badges" dynamodbav:"badges,omitempty"`

	// ObjectKey references the employee photo in the object store. Empty
	// means the employee has no photo.
	ObjectKey string `json:"objectKey,omitempty" dynamodbav:"objectKey,omitempty"`

	// PhotoURL is a presigned read URL attached when listing. Never persisted.
	PhotoURL string `json:"photo_url,omitempty" dynamodbav:"-"`
}

// HasPhoto reports whether the employee references a photo object.
func (e *Employee) HasPhoto() bool {
	return e.ObjectKey != ""
}

// NewID generates a new ULID string for use as an employee identifier.
func NewID() string {
	return ulid.Make().String()
}

// PhotoKey builds the object key for an uploaded photo:
// photos/<employeeID>-<filename>. The filename is used as given.
func PhotoKey(employeeID, filename string) string {
	var b strings.Builder
	b.Grow(len(PhotoKeyPrefix) + len(employeeID) + 1 + len(filename))
	b.WriteString(PhotoKeyPrefix)
	b.WriteString(employeeID)
	b.WriteByte('-')
	b.WriteString(filename)
	return b.String()
}
