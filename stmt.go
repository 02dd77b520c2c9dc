package main

import (
	"strconv"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  The label table maps
// a user-visible line label to the physical index of its line.  We
// do this to hide the AVL interface from the rest of the interpreter
//

type labelNode struct {
	avl   avl.AvlNode
	label int
	index int
}

type labelTable struct {
	root  *avl.AvlNode
	count int
}

func cmpIntKey(key any, node any) int {

	return cmpIntItems(key.(int), node.(*labelNode).label)
}

func cmpLabelNode(node1, node2 any) int {

	return cmpIntItems(node1.(*labelNode).label, node2.(*labelNode).label)
}

func cmpIntItems(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

//
// Labels must be unique.  The existing entry wins, and the caller
// gets told about the duplicate
//

func (lt *labelTable) insert(label, index int) error {

	node := &labelNode{label: label, index: index}

	p := avl.AvlTreeInsert(&lt.root, &node.avl, node, cmpLabelNode)
	if p != nil {
		return newError(EDUPLICATELABEL, strconv.Itoa(label))
	}

	lt.count++

	return nil
}

func (lt *labelTable) lookup(label int) (int, bool) {

	p := avl.AvlTreeLookup(lt.root, label, cmpIntKey)
	if p != nil {
		return p.(*labelNode).index, true
	} else {
		return 0, false
	}
}

func (lt *labelTable) firstInOrder() *labelNode {

	p := avl.AvlTreeFirstInOrder(lt.root)
	if p != nil {
		return p.(*labelNode)
	} else {
		return nil
	}
}

func (lt *labelTable) nextInOrder(node *labelNode) *labelNode {

	p := avl.AvlTreeNextInOrder(&node.avl)
	if p != nil {
		return p.(*labelNode)
	} else {
		return nil
	}
}

func (lt *labelTable) len() int {

	return lt.count
}
