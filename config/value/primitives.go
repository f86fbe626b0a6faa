package value

import (
	"fmt"
	"strconv"
	"strings"
)

// string

type String string

func NewString(p *string, val string) *String {
	*p = val

	return (*String)(p)
}

func (s *String) Set(val string) error {
	*s = String(val)
	return nil
}

func (s *String) String() string {
	return string(*s)
}

func (s *String) Validate() error {
	return nil
}

func (s *String) IsEmpty() bool {
	return len(string(*s)) == 0
}

// list of strings

type StringList struct {
	p         *[]string
	separator string
}

func NewStringList(p *[]string, val []string, separator string) *StringList {
	*p = val

	return &StringList{
		p:         p,
		separator: separator,
	}
}

func (s *StringList) Set(val string) error {
	*s.p = splitList(val, s.separator)
	return nil
}

func (s *StringList) String() string {
	return joinList(*s.p, s.separator)
}

func (s *StringList) Validate() error {
	return nil
}

func (s *StringList) IsEmpty() bool {
	return len(*s.p) == 0
}

// one string of a fixed set of strings

type Enum struct {
	p       *string
	allowed []string
}

// NewEnum returns a string value that only validates if it is one of the
// allowed strings. Set stores the lower case form.
func NewEnum(p *string, val string, allowed []string) *Enum {
	*p = val

	return &Enum{
		p:       p,
		allowed: allowed,
	}
}

func (e *Enum) Set(val string) error {
	*e.p = strings.ToLower(strings.TrimSpace(val))
	return nil
}

func (e *Enum) String() string {
	return *e.p
}

func (e *Enum) Validate() error {
	if !contains(e.allowed, *e.p) {
		return fmt.Errorf("'%s' is not one of %s", *e.p, strings.Join(e.allowed, ", "))
	}

	return nil
}

func (e *Enum) IsEmpty() bool {
	return len(*e.p) == 0
}

// list of strings of a fixed set of strings

type EnumList struct {
	p         *[]string
	allowed   []string
	separator string
}

func NewEnumList(p *[]string, val []string, allowed []string, separator string) *EnumList {
	*p = val

	return &EnumList{
		p:         p,
		allowed:   allowed,
		separator: separator,
	}
}

// Set parses the list and removes duplicates.
func (e *EnumList) Set(val string) error {
	unique := []string{}

	for _, elm := range splitList(strings.ToLower(val), e.separator) {
		if !contains(unique, elm) {
			unique = append(unique, elm)
		}
	}

	*e.p = unique

	return nil
}

func (e *EnumList) String() string {
	return joinList(*e.p, e.separator)
}

func (e *EnumList) Validate() error {
	for _, elm := range *e.p {
		if !contains(e.allowed, elm) {
			return fmt.Errorf("'%s' is not one of %s", elm, strings.Join(e.allowed, ", "))
		}
	}

	return nil
}

func (e *EnumList) IsEmpty() bool {
	return len(*e.p) == 0
}

func contains(list []string, s string) bool {
	for _, elm := range list {
		if elm == s {
			return true
		}
	}

	return false
}

// boolean

type Bool bool

func NewBool(p *bool, val bool) *Bool {
	*p = val

	return (*Bool)(p)
}

func (b *Bool) Set(val string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return err
	}
	*b = Bool(v)
	return nil
}

func (b *Bool) String() string {
	return strconv.FormatBool(bool(*b))
}

func (b *Bool) Validate() error {
	return nil
}

func (b *Bool) IsEmpty() bool {
	return !bool(*b)
}

// int

type Int int

func NewInt(p *int, val int) *Int {
	*p = val

	return (*Int)(p)
}

func (i *Int) Set(val string) error {
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

func (i *Int) String() string {
	return strconv.Itoa(int(*i))
}

func (i *Int) Validate() error {
	return nil
}

func (i *Int) IsEmpty() bool {
	return int(*i) == 0
}

// int64

type Int64 int64

func NewInt64(p *int64, val int64) *Int64 {
	*p = val

	return (*Int64)(p)
}

func (i *Int64) Set(val string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(val), 0, 64)
	if err != nil {
		return err
	}
	*i = Int64(v)
	return nil
}

func (i *Int64) String() string {
	return strconv.FormatInt(int64(*i), 10)
}

func (i *Int64) Validate() error {
	return nil
}

func (i *Int64) IsEmpty() bool {
	return int64(*i) == 0
}

// float64

type Float64 float64

func NewFloat(p *float64, val float64) *Float64 {
	*p = val

	return (*Float64)(p)
}

func (f *Float64) Set(val string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return err
	}
	*f = Float64(v)
	return nil
}

func (f *Float64) String() string {
	return strconv.FormatFloat(float64(*f), 'f', -1, 64)
}

func (f *Float64) Validate() error {
	return nil
}

func (f *Float64) IsEmpty() bool {
	return float64(*f) == 0
}
