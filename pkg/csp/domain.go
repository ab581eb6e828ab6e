// Package csp implements a finite-domain constraint satisfaction engine for
// digit puzzles. It provides bitset domains, a trail-backed domain store,
// AC-3 style constraint propagation, and backtracking search with
// variable-selection heuristics and optional parallel branch exploration.
package csp

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxDigits is the largest supported domain size. A Domain packs one bit per
// candidate digit into a single machine word, so domains cover digits 0..63.
const MaxDigits = 64

// Domain is an immutable set of candidate digits in the range [0, size).
// Operations return new values rather than mutating in place, so domains can
// be stored on the undo trail and shared between search branches freely.
//
// The zero Domain is empty. An empty domain signals an inconsistent
// constraint state.
type Domain struct {
	bits uint64
	size int
}

// FullDomain returns a domain containing every digit in [0, size).
// size must be in [1, MaxDigits].
func FullDomain(size int) Domain {
	if size <= 0 || size > MaxDigits {
		return Domain{}
	}
	if size == MaxDigits {
		return Domain{bits: ^uint64(0), size: size}
	}
	return Domain{bits: (uint64(1) << uint(size)) - 1, size: size}
}

// DomainOf returns a domain over [0, size) containing only the given digits.
// Digits outside the range are ignored.
func DomainOf(size int, digits ...int) Domain {
	d := Domain{size: size}
	if size <= 0 || size > MaxDigits {
		return Domain{}
	}
	for _, v := range digits {
		if v >= 0 && v < size {
			d.bits |= uint64(1) << uint(v)
		}
	}
	return d
}

// Size returns the exclusive upper bound on digits in this domain.
func (d Domain) Size() int { return d.size }

// Has returns true if the domain contains the digit.
func (d Domain) Has(digit int) bool {
	if digit < 0 || digit >= d.size {
		return false
	}
	return d.bits>>uint(digit)&1 == 1
}

// Remove returns a new domain without the digit. Removing a digit that is
// not present returns the domain unchanged.
func (d Domain) Remove(digit int) Domain {
	if digit < 0 || digit >= d.size {
		return d
	}
	return Domain{bits: d.bits &^ (uint64(1) << uint(digit)), size: d.size}
}

// Count returns the number of digits in the domain.
func (d Domain) Count() int { return bits.OnesCount64(d.bits) }

// IsEmpty returns true if no digits remain.
func (d Domain) IsEmpty() bool { return d.bits == 0 }

// IsSingleton returns true if exactly one digit remains.
func (d Domain) IsSingleton() bool { return d.bits != 0 && d.bits&(d.bits-1) == 0 }

// SingletonValue returns the single remaining digit.
// Panics if the domain is not a singleton.
func (d Domain) SingletonValue() int {
	if !d.IsSingleton() {
		panic("SingletonValue called on non-singleton domain")
	}
	return bits.TrailingZeros64(d.bits)
}

// IterateValues calls f for each digit in the domain in ascending order.
func (d Domain) IterateValues(f func(digit int)) {
	w := d.bits
	for w != 0 {
		t := w & -w
		f(bits.TrailingZeros64(w))
		w &^= t
	}
}

// Values returns the digits in the domain in ascending order.
func (d Domain) Values() []int {
	out := make([]int, 0, d.Count())
	d.IterateValues(func(v int) { out = append(out, v) })
	return out
}

// Min returns the smallest digit in the domain, or -1 if empty.
func (d Domain) Min() int {
	if d.bits == 0 {
		return -1
	}
	return bits.TrailingZeros64(d.bits)
}

// Max returns the largest digit in the domain, or -1 if empty.
func (d Domain) Max() int {
	if d.bits == 0 {
		return -1
	}
	return 63 - bits.LeadingZeros64(d.bits)
}

// Intersect returns a domain containing digits present in both domains.
func (d Domain) Intersect(other Domain) Domain {
	size := d.size
	if other.size < size {
		size = other.size
	}
	return Domain{bits: d.bits & other.bits, size: size}
}

// Equal returns true if both domains contain exactly the same digits.
func (d Domain) Equal(other Domain) bool {
	return d.bits == other.bits
}

// String returns a human-readable representation such as "{0..9}" or "{1,3,5}".
func (d Domain) String() string {
	values := d.Values()
	switch len(values) {
	case 0:
		return "{}"
	case 1:
		return fmt.Sprintf("{%d}", values[0])
	}
	consecutive := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return fmt.Sprintf("{%d..%d}", values[0], values[len(values)-1])
	}
	var b strings.Builder
	b.WriteString("{")
	for i, v := range values {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteString("}")
	return b.String()
}
