package contract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnknownMethod is returned for a method the ABI does not declare.
	ErrUnknownMethod = errors.New("method not found in ABI")
	// ErrNotWritable is returned when a view function is sent as a transaction.
	ErrNotWritable = errors.New("method is read-only")
	// ErrNotReadable is returned when a state-changing function is called as a read.
	ErrNotReadable = errors.New("method is not a read function")
	// ErrNotPayable is returned when value is attached to a non-payable method.
	ErrNotPayable = errors.New("method is not payable")
)

// Descriptor is a deployed contract: its address and parsed ABI.
type Descriptor struct {
	Address common.Address
	ABI     abi.ABI
}

// NewDescriptor parses abiJSON and binds it to addr.
func NewDescriptor(addr common.Address, abiJSON string) (*Descriptor, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing ABI: %w", err)
	}
	return &Descriptor{Address: addr, ABI: parsed}, nil
}

// Method looks up a function by name.
func (d *Descriptor) Method(name string) (abi.Method, error) {
	m, ok := d.ABI.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return m, nil
}

// IsRead reports whether name is a view or pure function.
func (d *Descriptor) IsRead(name string) bool {
	m, ok := d.ABI.Methods[name]
	return ok && m.IsConstant()
}

// IsPayable reports whether name accepts attached value.
func (d *Descriptor) IsPayable(name string) bool {
	m, ok := d.ABI.Methods[name]
	return ok && m.IsPayable()
}

// Pack encodes a call to name with args into calldata.
func (d *Descriptor) Pack(name string, args ...interface{}) ([]byte, error) {
	if _, err := d.Method(name); err != nil {
		return nil, err
	}
	data, err := d.ABI.Pack(name, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return data, nil
}

// Unpack decodes the return data of name.
func (d *Descriptor) Unpack(name string, data []byte) ([]interface{}, error) {
	if _, err := d.Method(name); err != nil {
		return nil, err
	}
	out, err := d.ABI.Unpack(name, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}

// Writes returns the names of every state-changing method, sorted.
func (d *Descriptor) Writes() []string {
	var out []string
	for name, m := range d.ABI.Methods {
		if !m.IsConstant() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Reads returns the names of every view method, sorted.
func (d *Descriptor) Reads() []string {
	var out []string
	for name, m := range d.ABI.Methods {
		if m.IsConstant() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
