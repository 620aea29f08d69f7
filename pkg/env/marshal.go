package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the env-tagged fields of one or more struct pointers as
// .env lines. Zero values are left out so envDefault applies on the next load.
func MarshalEnv(configs ...any) (string, error) {
	var lines []string

	for _, c := range configs {
		v := reflect.ValueOf(c)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return "", fmt.Errorf("env: expected pointer to struct, got %T", c)
		}
		v = v.Elem()
		t := v.Type()

		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			// "KEY,required,notEmpty" -> KEY
			key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
			if key == "" {
				continue
			}

			val := v.Field(i)
			if val.IsZero() {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s=%s", key, quote(formatValue(val))))
		}
	}

	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values godotenv would otherwise split or trim.
func quote(s string) string {
	if strings.ContainsAny(s, " #\"'\t\n") {
		return strconv.Quote(s)
	}
	return s
}
