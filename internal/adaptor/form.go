package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

const (
	// multipartMemory is kept in memory before parts spill to temp files.
	multipartMemory = 8 << 20
	// formOverhead allows for the text fields around an upload at the limit.
	formOverhead = 1 << 20

	videoField = "video"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errBadBody      = errors.New("invalid request body")
)

var formDecoder = newFormDecoder()

// fieldAliaser is implemented by requests that still accept older field names.
type fieldAliaser interface {
	FieldAliases() map[string]string
}

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// decodeBody fills dst from a JSON, urlencoded or multipart body and returns
// the optional video part.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, uploadLimit int64) (*multipart.FileHeader, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, uploadLimit+formOverhead)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		if err := formDecoder.Decode(dst, withAliases(dst, r.MultipartForm.Value)); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		if files := r.MultipartForm.File[videoField]; len(files) > 0 {
			return files[0], nil
		}
		return nil, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		if err := formDecoder.Decode(dst, withAliases(dst, r.PostForm)); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		return nil, nil

	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return nil, bodyError(err)
		}
		return nil, nil
	}
}

// withAliases copies values sent under an alias to the current field name
// unless that name is already present.
func withAliases(dst any, values url.Values) url.Values {
	aliaser, ok := dst.(fieldAliaser)
	if !ok {
		return values
	}

	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for alias, name := range aliaser.FieldAliases() {
		if v, ok := values[alias]; ok {
			if _, set := values[name]; !set {
				out[name] = v
			}
			delete(out, alias)
		}
	}
	return out
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}
