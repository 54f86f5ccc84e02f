package ast

import (
	"errors"
	"fmt"
)

// RangeError reports a bracket range whose bounds are not strictly
// increasing. Position is the midpoint of the two constant positions.
type RangeError struct {
	Position int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("range values are invalid (position - %d)", e.Position)
}

// Is matches any other *RangeError regardless of position.
func (e *RangeError) Is(target error) bool {
	var re *RangeError
	return errors.As(target, &re)
}

// validate checks the lowered tree in a single recursive pass. Only the
// range operator can be invalid; every other node is trivially valid once
// its children are.
func validate(n Node) error {
	switch node := n.(type) {
	case *Anchor:
		return validate(node.Inner)
	case *UnaryOperator:
		return validate(node.Operand)
	case *BinaryOperator:
		if node.Kind == Range {
			left, leftOK := node.Left.(*Constant)
			right, rightOK := node.Right.(*Constant)
			if !leftOK || !rightOK || left.Value >= right.Value {
				return &RangeError{Position: rangePosition(node)}
			}
			return nil
		}
		if err := validate(node.Left); err != nil {
			return err
		}
		return validate(node.Right)
	default:
		return nil
	}
}

func rangePosition(node *BinaryOperator) int {
	position := 0
	if left, ok := node.Left.(*Constant); ok {
		position += left.Position
	}
	if right, ok := node.Right.(*Constant); ok {
		position += right.Position
	}
	return position / 2
}
