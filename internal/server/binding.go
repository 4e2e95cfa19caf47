package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgInvalidJSON = "Invalid JSON body."

// bindJSON decodes the request body into dst and runs its binding rules. An
// empty body counts as {}. Rule failures report the msg tag of the first
// failing field.
func bindJSON(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return inputError(msgInvalidJSON)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return inputError(msgInvalidJSON)
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return inputError(fieldMessage(dst, verrs[0]))
		}
		return inputError(err.Error())
	}
	return nil
}

func fieldMessage(dst any, fe validator.FieldError) string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fe.Field() + " is invalid."
}

// isAbsent reports whether a raw JSON value was missing or null.
func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// coerceInt accepts a JSON number, an integer string or a boolean, the way
// clients send numeric form fields. Fractional numbers truncate toward zero
// and out of range values clamp to the int32 bounds, so range checks still
// report them as out of range.
func coerceInt(raw json.RawMessage) (int64, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case float64:
		return clampInt32(math.Trunc(n)), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return clampInt32(float64(i)), true
	default:
		return 0, false
	}
}

func clampInt32(f float64) int64 {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int64(f)
}

// isFalsy mirrors how optional references treat empty input: null, 0, "" and
// false mean "not set".
func isFalsy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return true
	}
	switch strings.TrimSpace(string(raw)) {
	case "0", `""`, "false":
		return true
	}
	return false
}
