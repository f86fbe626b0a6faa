// Package net provides IP range helpers for access control.
package net

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// The IPLimiter interface allows to check whether a certain IP
// is allowed.
type IPLimiter interface {
	// Tests whether the IP is allowed in respect to the underlying implementation
	IsAllowed(ip string) bool
}

// iplimit implements the IPLimiter interface by having an allow and block list
// of IP ranges.
type iplimit struct {
	allowlist []netip.Prefix
	blocklist []netip.Prefix
}

// NewIPLimiter creates a new IPLimiter with the given IP ranges for the
// blocked and allowed IPs. Empty strings are ignored. Returns an error
// if an invalid IP range has been found.
func NewIPLimiter(blocklist, allowlist []string) (IPLimiter, error) {
	ipl := &iplimit{}

	var err error

	ipl.blocklist, err = ParsePrefixes(blocklist)
	if err != nil {
		return nil, fmt.Errorf("block list: %w", err)
	}

	ipl.allowlist, err = ParsePrefixes(allowlist)
	if err != nil {
		return nil, fmt.Errorf("allow list: %w", err)
	}

	return ipl, nil
}

// IsAllowed checks whether the provided IP is allowed according to the IP
// ranges in the block and allow lists. A blocked IP is never allowed. An
// empty allow list allows all IPs that are not blocked.
func (ipl *iplimit) IsAllowed(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()

	for _, r := range ipl.blocklist {
		if r.Contains(addr) {
			return false
		}
	}

	if len(ipl.allowlist) == 0 {
		return true
	}

	for _, r := range ipl.allowlist {
		if r.Contains(addr) {
			return true
		}
	}

	return false
}

type nulliplimiter struct{}

// NewNullIPLimiter returns an IPLimiter that allows all IPs.
func NewNullIPLimiter() IPLimiter {
	return &nulliplimiter{}
}

func (ipl *nulliplimiter) IsAllowed(ip string) bool {
	return true
}

// ParsePrefixes parses a list of IP ranges in CIDR notation. A plain IP
// address is a range with only that address. Empty strings are ignored.
func ParsePrefixes(list []string) ([]netip.Prefix, error) {
	prefixes := []netip.Prefix{}

	for _, elm := range list {
		elm = strings.TrimSpace(elm)
		if len(elm) == 0 {
			continue
		}

		if !strings.Contains(elm, "/") {
			addr, err := netip.ParseAddr(elm)
			if err != nil {
				return nil, fmt.Errorf("the IP %s is invalid", elm)
			}

			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))

			continue
		}

		prefix, err := netip.ParsePrefix(elm)
		if err != nil {
			return nil, fmt.Errorf("the IP range %s is invalid", elm)
		}

		prefixes = append(prefixes, prefix.Masked())
	}

	return prefixes, nil
}

// ParseIPNets is like ParsePrefixes but returns the ranges as *net.IPNet.
func ParseIPNets(list []string) ([]*net.IPNet, error) {
	prefixes, err := ParsePrefixes(list)
	if err != nil {
		return nil, err
	}

	nets := make([]*net.IPNet, 0, len(prefixes))

	for _, p := range prefixes {
		nets = append(nets, &net.IPNet{
			IP:   net.IP(p.Addr().AsSlice()),
			Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
		})
	}

	return nets, nil
}
