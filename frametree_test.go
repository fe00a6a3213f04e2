package constellation

import "testing"

func tree(id PipelineID, children ...*FrameTree) *FrameTree {
	return &FrameTree{Pipeline: &Pipeline{ID: id}, Children: children}
}

func TestFrameTreeContains(t *testing.T) {
	root := tree(0, tree(1), tree(2, tree(3)))

	for _, id := range []PipelineID{0, 1, 2, 3} {
		if !root.Contains(id) {
			t.Errorf("Contains(%d) = false, want true", id)
		}
	}
	if root.Contains(99) {
		t.Error("Contains(99) = true, want false")
	}
}

func TestFrameTreeFind(t *testing.T) {
	leaf := tree(3)
	root := tree(0, tree(1), tree(2, leaf))

	if got := root.Find(3); got != leaf {
		t.Errorf("Find(3) = %v, want the leaf node", got)
	}
	if got := root.Find(99); got != nil {
		t.Errorf("Find(99) = %v, want nil", got)
	}
}

func TestFrameTreeReplaceChild(t *testing.T) {
	toReplace := tree(2)
	root := tree(0, tree(1), toReplace)
	newNode := tree(9)

	displaced := root.ReplaceChild(2, newNode)
	if displaced != toReplace {
		t.Fatalf("ReplaceChild returned %v, want the displaced node", displaced)
	}
	if root.Children[1] != newNode {
		t.Fatal("new node was not swapped into place")
	}
	if newNode.Parent != toReplace.Parent {
		t.Fatal("new node must inherit the displaced node's parent")
	}
}

func TestFrameTreeReplaceChildNeverReplacesSelf(t *testing.T) {
	root := tree(0)
	replacement := tree(9)

	result := root.ReplaceChild(0, replacement)
	if result != replacement {
		t.Fatal("ReplaceChild of the root's own id must return newChild unchanged, never replace t itself")
	}
	if root.Pipeline.ID != 0 {
		t.Fatal("root must be untouched")
	}
}

func TestFrameTreeReplaceChildNested(t *testing.T) {
	grandchild := tree(3)
	root := tree(0, tree(1, grandchild))
	newNode := tree(9)

	displaced := root.ReplaceChild(3, newNode)
	if displaced != grandchild {
		t.Fatalf("ReplaceChild should find a grandchild, got %v", displaced)
	}
	if root.Children[0].Children[0] != newNode {
		t.Fatal("grandchild was not replaced in place")
	}
}

func TestFrameTreeIterPreOrder(t *testing.T) {
	root := tree(0, tree(1), tree(2, tree(3)))
	var ids []PipelineID
	for _, n := range root.Iter() {
		ids = append(ids, n.Pipeline.ID)
	}
	want := []PipelineID{0, 1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("Iter() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Iter() = %v, want %v", ids, want)
		}
	}
}

func TestFrameTreeCloneStructureSharesPipelines(t *testing.T) {
	root := tree(0, tree(1))
	clone := root.CloneStructure()

	if clone == root {
		t.Fatal("clone must be a distinct tree")
	}
	if clone.Pipeline != root.Pipeline {
		t.Fatal("clone must share the underlying Pipeline")
	}
	clone.Children = append(clone.Children, tree(2))
	if len(root.Children) != 1 {
		t.Fatal("mutating the clone must not affect the original structure")
	}
}

func TestFrameTreeToSendable(t *testing.T) {
	p := &Pipeline{ID: 5, URL: mustURL(t, "http://a/")}
	root := &FrameTree{Pipeline: p, Children: []*FrameTree{tree(6)}}

	sendable := root.ToSendable()
	if sendable.PipelineSnapshot.ID != 5 {
		t.Fatalf("snapshot id = %d, want 5", sendable.PipelineSnapshot.ID)
	}
	if sendable.PipelineSnapshot.URL != "http://a/" {
		t.Fatalf("snapshot url = %q, want http://a/", sendable.PipelineSnapshot.URL)
	}
	if len(sendable.Children) != 1 || sendable.Children[0].PipelineSnapshot.ID != 6 {
		t.Fatal("snapshot children were not carried over")
	}
	if !sendable.Contains(6) {
		t.Fatal("SendableFrameTree.Contains must search children too")
	}
}
