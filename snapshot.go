package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/jcorbin/gobf/internal/tape"
)

// Snapshot records the complete state of a VM; tape cells are recorded
// through the highest address ever written.
type Snapshot struct {
	Capacity       uint   `cbor:"capacity"`
	InstructionPtr uint   `cbor:"ip"`
	DataPtr        uint   `cbor:"dp"`
	Stack          []uint `cbor:"stack"`
	State          string `cbor:"state"`
	Depth          uint   `cbor:"depth,omitempty"`
	Cells          []byte `cbor:"cells"`
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

var stateModes = map[string]mode{
	"running":  running,
	"skipping": skipping,
	"halted":   halted,
}

var modeNames = map[mode]string{
	running:  "running",
	skipping: "skipping",
	halted:   "halted",
}

// Snapshot captures the VM's current state.
func (vm *VM) Snapshot() Snapshot {
	return Snapshot{
		Capacity:       vm.tape.Cap(),
		InstructionPtr: vm.ip,
		DataPtr:        vm.dp,
		Stack:          append([]uint(nil), vm.stack...),
		State:          modeNames[vm.state.mode],
		Depth:          vm.state.depth,
		Cells:          vm.tape.Used(),
	}
}

// Restore replaces the VM's state, including its tape, with a snapshot.
// Returns an error, leaving the VM unchanged, if the snapshot is inconsistent.
func (vm *VM) Restore(snap Snapshot) error {
	md, ok := stateModes[snap.State]
	if !ok {
		return fmt.Errorf("invalid snapshot state %q", snap.State)
	}
	if (md == skipping) != (snap.Depth > 0) {
		return fmt.Errorf("invalid snapshot skip depth %v in state %v", snap.Depth, snap.State)
	}
	t := tape.New(snap.Capacity)
	if snap.DataPtr >= t.Cap() {
		return fmt.Errorf("invalid snapshot: %w", ptrError(snap.DataPtr))
	}
	if err := t.Restore(snap.Cells); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	vm.tape = t
	vm.capacity = t.Cap()
	vm.ip = snap.InstructionPtr
	vm.dp = snap.DataPtr
	vm.stack = append([]uint(nil), snap.Stack...)
	vm.state = machineState{mode: md, depth: snap.Depth}
	return nil
}

// MarshalSnapshot encodes a snapshot as canonical CBOR.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	return snapshotEncMode.Marshal(snap)
}

// UnmarshalSnapshot decodes a snapshot from CBOR.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// WriteSnapshotFile marshals a snapshot into the named file.
func WriteSnapshotFile(name string, snap Snapshot) error {
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// ReadSnapshotFile reads a snapshot from the named file.
func ReadSnapshotFile(name string) (Snapshot, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Snapshot{}, err
	}
	if len(data) == 0 {
		return Snapshot{}, errors.New("empty snapshot file")
	}
	return UnmarshalSnapshot(data)
}
