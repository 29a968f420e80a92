package order

import (
	"fmt"
	"regexp"
	"strconv"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
)

// Traceability correlates a parent order with all its children. The code is
// shared by the whole family; the sequence is 0 on the parent and the
// 1-based basket index on each child, so a child order number maps back to
// its parent without a join.
type Traceability struct {
	code     string
	sequence int
}

var childNumberForm = regexp.MustCompile(`^([A-Z]+-[0-9A-F]{10})-(\d{2,})$`)

// NewTraceCode generates a fresh trace code, e.g. "FC-3FA8B01C2D".
func NewTraceCode() string {
	raw := kernel.NewUUID().Bytes()
	return fmt.Sprintf("FC-%X", raw[:5])
}

// NewTraceability creates a validated traceability tag. Sequence 0 marks the
// parent; children use 1-based basket indexes.
func NewTraceability(code string, sequence int) (Traceability, error) {
	if code == "" {
		return Traceability{}, errs.NewValueIsRequiredError("trace code")
	}
	if sequence < 0 {
		return Traceability{}, errs.NewValueIsInvalidErrorWithCause("trace sequence",
			fmt.Errorf("%d is negative", sequence))
	}
	return Traceability{code: code, sequence: sequence}, nil
}

// Code returns the shared trace code of the order family.
func (t Traceability) Code() string { return t.code }

// Sequence returns the position within the family (0 = parent).
func (t Traceability) Sequence() int { return t.sequence }

// OrderNumber derives the human-readable order number for this tag: the
// trace code itself on the parent, "<code>-<NN>" on children.
func (t Traceability) OrderNumber() string {
	if t.sequence == 0 {
		return t.code
	}
	return fmt.Sprintf("%s-%02d", t.code, t.sequence)
}

// ParentOrderNumber returns the parent order number for any order number in
// a family: child numbers have their sequence suffix stripped, parent and
// single order numbers are returned unchanged.
func ParentOrderNumber(orderNumber string) string {
	m := childNumberForm.FindStringSubmatch(orderNumber)
	if m == nil {
		return orderNumber
	}
	if seq, err := strconv.Atoi(m[2]); err != nil || seq == 0 {
		return orderNumber
	}
	return m[1]
}
