package tape

import "fmt"

// DeltaError indicates that applying a delta to a cell would leave the byte
// range; cells never wrap.
type DeltaError struct {
	Value byte
	Delta int8
}

func (de DeltaError) Error() string {
	return fmt.Sprintf("cannot apply %+d to %v", de.Delta, de.Value)
}

// Delta returns cur+delta, or a DeltaError if the result falls outside [0, 255].
func Delta(cur byte, delta int8) (byte, error) {
	if next := int(cur) + int(delta); 0 <= next && next <= 0xff {
		return byte(next), nil
	}
	return cur, DeltaError{cur, delta}
}
