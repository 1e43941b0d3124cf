// Package funcs provides ready-made host functions a rule host can register
// with an evaluator.
package funcs

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"jsexpr/jsexpr"
)

// UUID returns a function producing a random v4 identifier string.
// Registered as uuid().
func UUID() jsexpr.Function {
	return jsexpr.FuncOf("uuid", func(args []any) (any, error) {
		if len(args) != 0 {
			return nil, &jsexpr.ArityError{Expected: 0, Got: len(args)}
		}
		return uuid.NewString(), nil
	})
}

// Base64Encode returns base64_encode(s), encoding a string with standard
// padding.
func Base64Encode() jsexpr.Function {
	return jsexpr.FuncOf("base64_encode", func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, &jsexpr.ArityError{Expected: 1, Got: len(args)}
		}
		return base64.StdEncoding.EncodeToString([]byte(jsexpr.ToString(args[0]))), nil
	})
}

// Base64Decode returns base64_decode(s). Input that is not valid base64 is
// an ArgumentError.
func Base64Decode() jsexpr.Function {
	return jsexpr.FuncOf("base64_decode", func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, &jsexpr.ArityError{Expected: 1, Got: len(args)}
		}
		decoded, err := base64.StdEncoding.DecodeString(jsexpr.ToString(args[0]))
		if err != nil {
			return nil, &jsexpr.ArgumentError{Message: fmt.Sprintf("invalid base64 input: %v", err)}
		}
		return string(decoded), nil
	})
}

// Env returns env(name) or env(name, fallback). A missing variable reads as
// the fallback, or null without one.
func Env() jsexpr.Function {
	return jsexpr.FuncOf("env", func(args []any) (any, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, &jsexpr.ArityError{Expected: 1, Got: len(args)}
		}
		name, ok := args[0].(string)
		if !ok {
			return nil, &jsexpr.ArgumentError{Message: "variable name must be a string"}
		}
		value, present := os.LookupEnv(name)
		if present {
			return value, nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return nil, nil
	})
}

// NewHTTPGet returns http_get(url): a GET through the supplied resty client,
// yielding {status, body}. A JSON response body is decoded into the value
// universe; anything else is returned as a string. The caller owns the
// client and its timeout and retry policy.
func NewHTTPGet(client *resty.Client) jsexpr.Function {
	return jsexpr.FuncOf("http_get", func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, &jsexpr.ArityError{Expected: 1, Got: len(args)}
		}
		url, ok := args[0].(string)
		if !ok {
			return nil, &jsexpr.ArgumentError{Message: "url must be a string"}
		}
		resp, err := client.R().Get(url)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}
		raw := resp.Body()
		var body any = string(raw)
		var decoded any
		if json.Unmarshal(raw, &decoded) == nil {
			body = decoded
		}
		return map[string]any{
			"status": float64(resp.StatusCode()),
			"body":   body,
		}, nil
	})
}

// Defaults bundles the offline-safe functions: uuid, base64_encode,
// base64_decode and env.
func Defaults() jsexpr.FuncMap {
	return jsexpr.FuncMap{
		"uuid":          UUID(),
		"base64_encode": Base64Encode(),
		"base64_decode": Base64Decode(),
		"env":           Env(),
	}
}
