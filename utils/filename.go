package utils

import (
	"fmt"
	"net/url"
)

// AttachmentDisposition builds a Content-Disposition header value for the
// given file name, with RFC 5987 encoding for non-ASCII characters.
func AttachmentDisposition(filename string) string {
	encoded := url.PathEscape(filename)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, filename, encoded)
}
