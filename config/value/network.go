package value

import (
	"fmt"
	"net"
	"regexp"

	"github.com/livingaura/aura/http/cors"
)

var portOnly = regexp.MustCompile("^[0-9]+$")

// listen address (host?:port)

type Address string

func NewAddress(p *string, val string) *Address {
	*p = val

	return (*Address)(p)
}

// Set accepts a plain port number as a shorthand for ":port".
func (s *Address) Set(val string) error {
	if portOnly.MatchString(val) {
		val = ":" + val
	}

	*s = Address(val)
	return nil
}

func (s *Address) String() string {
	return string(*s)
}

func (s *Address) Validate() error {
	_, port, err := net.SplitHostPort(string(*s))
	if err != nil {
		return err
	}

	if !portOnly.MatchString(port) {
		return fmt.Errorf("the port must be numerical")
	}

	return nil
}

func (s *Address) IsEmpty() bool {
	return s.Validate() != nil
}

// list of networks in CIDR notation

type CIDRList struct {
	p         *[]string
	separator string
}

func NewCIDRList(p *[]string, val []string, separator string) *CIDRList {
	*p = val

	return &CIDRList{
		p:         p,
		separator: separator,
	}
}

func (s *CIDRList) Set(val string) error {
	*s.p = splitList(val, s.separator)
	return nil
}

func (s *CIDRList) String() string {
	return joinList(*s.p, s.separator)
}

func (s *CIDRList) Validate() error {
	for _, cidr := range *s.p {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return err
		}
	}

	return nil
}

func (s *CIDRList) IsEmpty() bool {
	return len(*s.p) == 0
}

// list of origins for CORS

type CORSOrigins struct {
	p         *[]string
	separator string
}

func NewCORSOrigins(p *[]string, val []string, separator string) *CORSOrigins {
	*p = val

	return &CORSOrigins{
		p:         p,
		separator: separator,
	}
}

func (s *CORSOrigins) Set(val string) error {
	*s.p = splitList(val, s.separator)
	return nil
}

func (s *CORSOrigins) String() string {
	return joinList(*s.p, s.separator)
}

func (s *CORSOrigins) Validate() error {
	return cors.Validate(*s.p)
}

func (s *CORSOrigins) IsEmpty() bool {
	return len(*s.p) == 0
}
