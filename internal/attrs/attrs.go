// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Attr represents each of the dataset columns to be included in the preview.
type Attr struct {
	// The dataset column to read the value from.
	Key string
	// Should this Attr be included in output or has it been switched off?
	Include bool
	// The key to use in the output. This is also the column heading when
	// output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

var (
	lengthRe = regexp.MustCompile(`-?\d+`)
	specRe   = regexp.MustCompile(`^[uUlL0-9,\-]*$`)
)

// Transform applies the case and length transformations in TransformSpec to
// value.
func (a *Attr) Transform(value string) string {
	result := value

	// We need to know which case transformation appears last.  This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and, thus, allows the attr's to carry more weight.
	// IOW...  --attrs '*::U,employer::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same logic as above re: case.  A more specific length transformation
	// overrides a global one.
	match := lengthRe.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := l
	if abs < 0 {
		abs = -abs
	}

	runes := []rune(result)
	if len(runes) <= abs {
		return result
	}
	if l >= 0 {
		return string(runes[:l])
	}

	// Negative lengths keep both ends and elide the middle.
	lr := max(abs/2-1, 0)
	return string(runes[:lr]) + ".." + string(runes[len(runes)-lr:])
}

type AttrList []Attr

// Defaults returns an AttrList including each of columns as is.
func Defaults(columns ...string) AttrList {
	al := make(AttrList, 0, len(columns))
	for _, c := range columns {
		al = append(al, Attr{Key: c, Include: true, OutputKey: c})
	}
	return al
}

// Return a string representation of the AttrList.  This should match the format
// of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList. Column
// names are matched case-insensitively.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec.  The first is the
	// column to read.  The second is the heading to use in the output.  The
	// third is the transformation spec to apply to the output value. The
	// latter two are optional.  The heading defaults to the column name.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q", spec)
		}

		// The first field is the column.  If it begins with a !, it is
		// excluded from the output.
		attr.Key = strings.ToUpper(strings.TrimSpace(fields[keyIdx]))
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = strings.TrimSpace(attr.Key[1:])
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: missing column", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
			if !specRe.MatchString(attr.TransformSpec) {
				return fmt.Errorf("invalid transform %q for %s", attr.TransformSpec, attr.Key)
			}
		}

		// If the attr already exists in the list (because it's one of the
		// defaults or the user double-entered it) just apply the OutputKey,
		// Include and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() {
	spec := ""

	// Find the global transform spec.  If there is more than one, we're not
	// dealing with it and just taking the first.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return
	}

	for a := range *alist {
		if (*alist)[a].Key == "*" {
			continue
		}
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}
}

// Included returns the attrs that produce output, in order.
func (a AttrList) Included() []Attr {
	var out []Attr
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

func (a *AttrList) Type() string {
	return "list"
}
