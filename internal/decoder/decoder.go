package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1_048_576

// MalformedRequest describes why a request body could not be decoded.
type MalformedRequest struct {
	Status int
	Msg    string
}

func (mr *MalformedRequest) Error() string {
	return mr.Msg
}

// DecodeJSONBody decodes a single JSON object from the request body into dst.
// It rejects unknown fields, syntax errors, type mismatches, empty bodies,
// oversized bodies and trailing data with a *MalformedRequest.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at character %d)", syntaxError.Offset)
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: msg}

		// Decode can return io.ErrUnexpectedEOF for truncated JSON.
		case errors.Is(err, io.ErrUnexpectedEOF):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: "Request body contains badly-formed JSON"}

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				msg := fmt.Sprintf("Request body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
				return &MalformedRequest{Status: http.StatusBadRequest, Msg: msg}
			}
			msg := fmt.Sprintf("Request body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: msg}

		case errors.Is(err, io.EOF):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: "Request body must not be empty"}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown key %s", fieldName)
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: msg}

		case errors.As(err, &maxBytesError):
			msg := fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit)
			return &MalformedRequest{Status: http.StatusRequestEntityTooLarge, Msg: msg}

		// A non-pointer destination is a programming error.
		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		// Custom unmarshalers (dates, prices) end up here.
		default:
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: "Request body contains an invalid value: " + err.Error()}
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return &MalformedRequest{Status: http.StatusBadRequest, Msg: "Request body must only contain a single JSON object"}
	}

	return nil
}

// WriteError answers the request for an error returned by DecodeJSONBody.
func WriteError(w http.ResponseWriter, err error) {
	var mr *MalformedRequest
	if errors.As(err, &mr) {
		http.Error(w, mr.Msg, mr.Status)
		return
	}
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}
