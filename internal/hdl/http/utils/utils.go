package utils

import (
	"io"
	"mime/multipart"
	"net/http"
	"runtime/debug"

	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/hdl"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var validate = validator.New()

var devMode bool
var secureCookies bool

// SetMode wires the envelope and cookie behavior to the server mode: stack
// traces leave the process only in dev, cookies are Secure only in prod.
func SetMode(mode string) {
	devMode = mode == "dev"
	secureCookies = mode == "prod"
}

// Response is the uniform success envelope.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorsResponse is the uniform error envelope. Stack is populated only in
// dev mode.
type ErrorsResponse struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Stack      string   `json:"stack,omitempty"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Success:    true,
			StatusCode: statusCode,
			Message:    message,
			Data:       data,
		},
	)
}

func ErrResponse(w http.ResponseWriter, statusCode int, err error) {
	res := &ErrorsResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    err.Error(),
		Errors:     []string{err.Error()},
	}

	if devMode {
		res.Stack = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(res)
}

// ParseAndValidate decodes the JSON body into req and runs struct
// validation, writing the 400 itself on failure.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(req); err != nil {
		ErrResponse(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

// ParseFileField reads one uploaded file from an already-parsed multipart
// form. A missing field returns (nil, nil) so the caller decides whether the
// file is mandatory.
func ParseFileField(r *http.Request, field string) (*s3.UploadFileRequest, error) {
	if r.MultipartForm == nil {
		return nil, hdl.ErrDecodeRequest
	}

	headers, ok := r.MultipartForm.File[field]
	if !ok || len(headers) == 0 {
		return nil, nil
	}

	return readFileHeader(headers[0])
}

func readFileHeader(header *multipart.FileHeader) (*s3.UploadFileRequest, error) {
	if header.Size > config.MaxMemory {
		return nil, hdl.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		zap.L().Error("failed to open uploaded file", zap.Error(err))
		return nil, hdl.ErrInternal
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		zap.L().Error("failed to read uploaded file", zap.Error(err))
		return nil, hdl.ErrInternal
	}

	return &s3.UploadFileRequest{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		File:        bytes,
	}, nil
}

// SetAuthCookies sets both token cookies, httpOnly always and Secure in
// prod mode.
func SetAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(
		w, &http.Cookie{
			Name:     config.AccessCookieName,
			Value:    access,
			MaxAge:   int(config.AccessTokenDuration.Seconds()),
			HttpOnly: true,
			Secure:   secureCookies,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)

	http.SetCookie(
		w, &http.Cookie{
			Name:     config.RefreshCookieName,
			Value:    refresh,
			MaxAge:   int(config.RefreshTokenDuration.Seconds()),
			HttpOnly: true,
			Secure:   secureCookies,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)
}

func ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{config.AccessCookieName, config.RefreshCookieName} {
		http.SetCookie(
			w, &http.Cookie{
				Name:     name,
				Value:    "",
				MaxAge:   -1,
				HttpOnly: true,
				Secure:   secureCookies,
				Path:     "/",
				SameSite: http.SameSiteStrictMode,
			},
		)
	}
}
