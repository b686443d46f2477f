package btree_test

import (
	"bytes"
	"fmt"

	"github.com/KilimcininKorOglu/tuplemap/btree"
)

func ExampleMap_Insert() {
	m, _ := btree.New(2, btree.FloatSize)

	for _, k := range []btree.Key{{1, 0}, {0, 5}, {1, 0}, {0, 2}} {
		created, c, _ := m.Insert(k)
		c.SetFloat(c.Float() + 1)
		fmt.Println(k, created)
	}

	for c := m.Begin(); c.Next(); {
		fmt.Println(c.Key(), c.Float())
	}
	// Output:
	// (1,0) true
	// (0,5) true
	// (1,0) false
	// (0,2) true
	// (0,2) 1
	// (0,5) 1
	// (1,0) 2
}

func ExampleMap_FindPrevious() {
	m, _ := btree.New(1, 0)
	for _, k := range []int32{10, 20, 30} {
		m.Insert(btree.Key{k})
	}

	for _, probe := range []int32{5, 20, 25} {
		c, ok, _ := m.FindPrevious(btree.Key{probe})
		fmt.Println(probe, c.Key(), ok)
	}
	// Output:
	// 5 () false
	// 20 (20) true
	// 25 (20) true
}

func ExampleMap_Serialize() {
	src, _ := btree.New(1, btree.FloatSize)
	for _, k := range []int32{5, 1, 3} {
		_, c, _ := src.Insert(btree.Key{k})
		c.SetFloat(float64(k))
	}

	var buf bytes.Buffer
	_ = src.Serialize(&buf)

	dst, _ := btree.New(1, btree.FloatSize)
	_ = dst.Deserialize(&buf)

	c, found, _ := dst.Find(btree.Key{3})
	fmt.Println(found, c.Float(), dst.Size())
	// Output:
	// true 3 3
}
