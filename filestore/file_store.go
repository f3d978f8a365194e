package filestore

// Shared Func type for file stores
type CustomizeUploadedUrlType func(string) string

// ImageStore persists user uploaded images and serves them back by url.
// Images arrive from the client as base64 data uris.
type ImageStore interface {
	StoreEncoded(dataUri string) (key string, err error)
	Delete(key string) error
	GetUrlFromKey(key string) string
	CleanUp()
}
