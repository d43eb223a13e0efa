package base

// HTTP headers used by the SWORD 1.3 deposit protocol.
const (
	HeaderOnBehalfOf         string = "X-On-Behalf-Of"
	HeaderPackaging          string = "X-Packaging"
	HeaderVerbose            string = "X-Verbose"
	HeaderNoOp               string = "X-No-Op"
	HeaderContentMD5         string = "Content-MD5"
	HeaderContentDisposition string = "Content-Disposition"
	HeaderContentType        string = "Content-Type"
	HeaderContentLength      string = "Content-Length"
	HeaderUserAgent          string = "User-Agent"
	HeaderLocation           string = "Location"
	HeaderErrorCode          string = "X-Error-Code"
	HeaderAuthorization      string = "Authorization"
)

// Error URIs reserved by SWORD 1.3 for sword:error documents.
const (
	ErrorURIPrefix        string = "http://purl.org/net/sword/error/"
	ErrorContent          string = ErrorURIPrefix + "ErrorContent"
	ErrorChecksumMismatch string = ErrorURIPrefix + "ErrorChecksumMismatch"
	ErrorBadRequest       string = ErrorURIPrefix + "ErrorBadRequest"
	TargetOwnerUnknown    string = ErrorURIPrefix + "TargetOwnerUnknown"
	MediationNotAllowed   string = ErrorURIPrefix + "MediationNotAllowed"
	MaxUploadSizeExceeded string = ErrorURIPrefix + "MAX_UPLOAD_SIZE_EXCEEDED"
)

var reservedErrorCodes = map[string]bool{
	ErrorContent:          true,
	ErrorChecksumMismatch: true,
	ErrorBadRequest:       true,
	TargetOwnerUnknown:    true,
	MediationNotAllowed:   true,
	MaxUploadSizeExceeded: true,
}

// IsReservedErrorCode reports if uri is one of the error codes enumerated
// by SWORD 1.3.
func IsReservedErrorCode(uri string) bool {
	return reservedErrorCodes[uri]
}
