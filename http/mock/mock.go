// Package mock provides helpers for testing HTTP handlers.
package mock

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/livingaura/aura/encoding/json"
	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/http/errorhandler"
	"github.com/livingaura/aura/http/validator"

	"github.com/invopop/jsonschema"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func DummyEcho() *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = errorhandler.HTTPErrorHandler
	router.Logger.SetOutput(io.Discard)
	router.Validator = validator.New()
	router.IPExtractor = echo.ExtractIPDirect()

	return router
}

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Header  http.Header
	Raw     []byte
	Data    interface{}
}

func Request(t require.TestingT, httpstatus int, router *echo.Echo, method, path string, data io.Reader) *Response {
	return RequestEx(t, httpstatus, router, method, path, data, "", true)
}

// RequestFrom sends the request with the given remote address, e.g. "192.0.2.1:1234".
func RequestFrom(t require.TestingT, httpstatus int, router *echo.Echo, method, path, remoteAddr string) *Response {
	return RequestEx(t, httpstatus, router, method, path, nil, remoteAddr, true)
}

func RequestEx(t require.TestingT, httpstatus int, router *echo.Echo, method, path string, data io.Reader, remoteAddr string, checkResponse bool) *Response {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, data)
	if data != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)

	var response *Response = nil

	if checkResponse {
		response = CheckResponse(t, w.Result())
	} else {
		response = CheckResponseMinimal(t, w.Result())
	}

	require.Equal(t, httpstatus, w.Code, string(response.Raw))

	return response
}

func CheckResponseMinimal(t require.TestingT, res *http.Response) *Response {
	response := &Response{
		Code:   res.StatusCode,
		Header: res.Header,
	}

	res.Body.Close()

	return response
}

func CheckResponse(t require.TestingT, res *http.Response) *Response {
	response := &Response{
		Code:   res.StatusCode,
		Header: res.Header,
	}

	body, err := io.ReadAll(res.Body)
	require.Equal(t, nil, err)

	res.Body.Close()

	response.Raw = body

	if strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		err := json.Unmarshal(body, &response.Data)
		require.Equal(t, nil, err)
	} else {
		response.Data = body
	}

	if response.Code != http.StatusOK {
		apierr := api.Error{}
		if err := json.Unmarshal(body, &apierr); err == nil {
			response.Message = apierr.Message
		}
	}

	return response
}

// Validate checks that the data matches the JSON schema of datatype.
func Validate(t require.TestingT, datatype, data interface{}) bool {
	schema, err := jsonschema.Reflect(datatype).MarshalJSON()
	require.NoError(t, err)

	schemaLoader := gojsonschema.NewStringLoader(string(schema))
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	require.Equal(t, nil, err)
	require.Equal(t, true, result.Valid(), result.Errors())

	return true
}

func Read(t require.TestingT, path string) io.Reader {
	data, err := os.ReadFile(path)
	require.Equal(t, nil, err)

	return bytes.NewReader(data)
}
