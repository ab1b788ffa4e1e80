package mapper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
)

// Driver scans are not uniform across column types, so every read goes
// through a tolerant coercion. Missing keys and NULLs collapse to the
// zero value.

func asString(row gateway.Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format("2006-01-02")
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asStringPtr(row gateway.Row, key string) *string {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	s := asString(row, key)
	return &s
}

func asBool(row gateway.Row, key string) bool {
	v, ok := row[key]
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	case []byte:
		parsed, err := strconv.ParseBool(string(b))
		return err == nil && parsed
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

func asInt(row gateway.Row, key string) int {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, _ := strconv.Atoi(n)
		return parsed
	case []byte:
		parsed, _ := strconv.Atoi(string(n))
		return parsed
	default:
		return 0
	}
}
