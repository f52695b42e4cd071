package models

// LocalFile is a file picked by the user that has not been uploaded yet.
type LocalFile struct {
	Name        string
	ContentType string
	Content     []byte
}

func (f LocalFile) Size() int64 {
	return int64(len(f.Content))
}
