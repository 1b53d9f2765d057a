// SPDX-License-Identifier: MIT
package utils

import "testing"

func TestGenerateBaseline(t *testing.T) {
	t.Parallel()
	data := GenerateBaseline(4, 8, 10)

	if len(data) != 32 {
		t.Fatalf("buffer size = %d, want 32", len(data))
	}
	// Every time row must be identical to the first.
	for row := 1; row < 4; row++ {
		for col := 0; col < 8; col++ {
			if data[row*8+col] != data[col] {
				t.Fatalf("row %d differs from row 0 at col %d", row, col)
			}
		}
	}
}

func TestInjectChannelRFI(t *testing.T) {
	t.Parallel()
	data := GenerateBaseline(4, 8, 10)
	before := data[3] // channel 3, row 0
	InjectChannelRFI(data, 4, 8, 3, 100)

	for row := 0; row < 4; row++ {
		if got := data[row*8+3]; got != before+100 {
			t.Errorf("row %d channel 3 = %f, want %f", row, got, before+100)
		}
	}
	if data[2] != GenerateBaseline(4, 8, 10)[2] {
		t.Error("neighboring channel modified")
	}
}

func TestCountFlags(t *testing.T) {
	t.Parallel()
	mask := []byte{0, 1, 1, 0, 1}
	if got := CountFlags(mask); got != 3 {
		t.Errorf("CountFlags() = %d, want 3", got)
	}
}

func TestFlaggedColumns(t *testing.T) {
	t.Parallel()
	// 2x3 mask: column 0 fully set, column 1 partial, column 2 empty.
	mask := []byte{
		1, 1, 0,
		1, 0, 0,
	}
	got := FlaggedColumns(mask, 2, 3)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("FlaggedColumns() = %v, want [0]", got)
	}
}

func TestMockTransport(t *testing.T) {
	t.Parallel()
	mt := &MockTransport{}
	if err := mt.Send("payload"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if mt.Sent != 1 || mt.LastData != "payload" {
		t.Errorf("MockTransport state = %+v, want 1 send of \"payload\"", mt)
	}
}
