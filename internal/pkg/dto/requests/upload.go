package requests

type AuthorizeUpload struct {
	ContentType string `json:"contentType" validate:"required,max=255"`
	MaxBytes    int64  `json:"maxBytes" validate:"gt=0"`
	KeyPrefix   string `json:"keyPrefix" validate:"required,key_prefix"`
	FileName    string `json:"fileName,omitempty" validate:"max=255"`
}
