package btree

import (
	"math"
	"testing"
)

func TestCompareKeys(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{"equal", Key{1, 2, 3}, Key{1, 2, 3}, 0},
		{"first element less", Key{0, 9, 9}, Key{1, 0, 0}, -1},
		{"first element greater", Key{2, 0, 0}, Key{1, 9, 9}, 1},
		{"last element decides", Key{1, 2, 3}, Key{1, 2, 4}, -1},
		{"negative elements", Key{-1, 0}, Key{0, -1}, -1},
		{"extremes", Key{math.MinInt32}, Key{math.MaxInt32}, -1},
		{"extremes reversed", Key{math.MaxInt32}, Key{math.MinInt32}, 1},
		{"single element", Key{7}, Key{7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareKeys(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareKeys(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// The in-tree comparator works on encoded items and must agree with
// CompareKeys on every input, including ones that would overflow a
// subtraction.
func TestCompareKeyItemAgreesWithCompareKeys(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32 + 1, -2, -1, 0, 1, 2, math.MaxInt32 - 1, math.MaxInt32}

	for _, a0 := range values {
		for _, a1 := range values {
			for _, b0 := range values {
				for _, b1 := range values {
					a, b := Key{a0, a1}, Key{b0, b1}
					item := testItem(2*KeyElemSize+8, b)
					if got, want := compareKeyItem(a, item), CompareKeys(a, b); got != want {
						t.Fatalf("compareKeyItem(%v, %v) = %d, CompareKeys = %d", a, b, got, want)
					}
				}
			}
		}
	}
}

func TestEncodeDecodeKey(t *testing.T) {
	key := Key{-5, 0, math.MaxInt32, math.MinInt32}
	item := make([]byte, len(key)*KeyElemSize+3)

	encodeKey(item, key)
	got := decodeKey(item, len(key))

	if CompareKeys(got, key) != 0 {
		t.Errorf("decodeKey(encodeKey(%v)) = %v", key, got)
	}
	for _, b := range item[len(key)*KeyElemSize:] {
		if b != 0 {
			t.Fatal("encodeKey wrote past the key")
		}
	}
}

func TestKeyString(t *testing.T) {
	if got := (Key{0, -1, 3}).String(); got != "(0,-1,3)" {
		t.Errorf("unexpected key string %q", got)
	}
	if got := (Key{}).String(); got != "()" {
		t.Errorf("unexpected empty key string %q", got)
	}
}
