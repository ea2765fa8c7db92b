package jsonvalue

import (
	"github.com/go-viper/mapstructure/v2"
)

// Decode stores v into the struct, map or slice pointed to by out, matching
// object keys against json struct tags.
//
// Example:
//
//	var user struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//	if err := jsonvalue.Decode(res.Value, &user); err != nil {
//	    return err
//	}
func Decode(v Value, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(ToAny(v))
}
