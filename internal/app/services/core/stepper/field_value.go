package stepper

import (
	"lgu-portal-service/internal/app/models"
	"strings"
)

type ValueKind int

const (
	KindUnset ValueKind = iota
	KindText
	KindList
	KindPendingFile
	KindUploadedFile
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindPendingFile:
		return "pending_file"
	case KindUploadedFile:
		return "uploaded_file"
	default:
		return "unset"
	}
}

// FieldValue holds exactly one of: nothing, a text value, a list of
// selections, a local file waiting to be uploaded, or the storage key of an
// uploaded file.
type FieldValue struct {
	kind ValueKind
	text string
	list []string
	file models.LocalFile
}

func Unset() FieldValue {
	return FieldValue{}
}

func Text(value string) FieldValue {
	return FieldValue{kind: KindText, text: value}
}

func List(values ...string) FieldValue {
	return FieldValue{kind: KindList, list: append([]string(nil), values...)}
}

func PendingFile(file models.LocalFile) FieldValue {
	return FieldValue{kind: KindPendingFile, file: file}
}

func UploadedFile(key string) FieldValue {
	return FieldValue{kind: KindUploadedFile, text: key}
}

func (v FieldValue) Kind() ValueKind {
	return v.kind
}

func (v FieldValue) Text() (string, bool) {
	return v.text, v.kind == KindText
}

func (v FieldValue) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string(nil), v.list...), true
}

func (v FieldValue) PendingFile() (models.LocalFile, bool) {
	return v.file, v.kind == KindPendingFile
}

func (v FieldValue) UploadedKey() (string, bool) {
	return v.text, v.kind == KindUploadedFile
}

// satisfies reports whether the value fills a required field of fieldType.
func (v FieldValue) satisfies(fieldType string) bool {
	if fieldType == models.FieldTypeFile {
		return v.kind == KindPendingFile || v.kind == KindUploadedFile
	}

	switch v.kind {
	case KindText:
		return strings.TrimSpace(v.text) != ""
	case KindList:
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return true
			}
		}
	}
	return false
}

// payload returns the value sent with payment initiation. Pending files and
// unset values are never part of the payload.
func (v FieldValue) payload() (interface{}, bool) {
	switch v.kind {
	case KindText:
		return v.text, true
	case KindList:
		return append([]string(nil), v.list...), true
	case KindUploadedFile:
		return v.text, true
	}
	return nil, false
}
