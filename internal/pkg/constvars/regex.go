package constvars

const (
	RegexServiceID = `^[a-z0-9]+(?:-[a-z0-9]+)*$`
	RegexFieldID   = `^[A-Za-z][A-Za-z0-9_-]{0,63}$`
	RegexKeyPrefix = `^services/[a-z0-9]+(?:-[a-z0-9]+)*(?:/[A-Za-z0-9_-]+)?$`
)
