package decimate

import "testing"

func TestQueuePopsCheapestFirst(t *testing.T) {
	q := NewQueue()
	q.Insert(0, 5.0)
	q.Insert(1, 1.0)
	q.Insert(2, 3.0)

	order := []int{}
	for q.Len() > 0 {
		ei, _, _ := q.Pop()
		order = append(order, ei)
	}

	want := []int{1, 2, 0}
	for i, v := range want {
		if order[i] != v {
			t.Errorf("pop order[%d] = %d, want %d (full order %v)", i, order[i], v, order)
		}
	}
}

func TestQueueTiebreakByEdgeIndex(t *testing.T) {
	q := NewQueue()
	q.Insert(5, 1.0)
	q.Insert(2, 1.0)
	q.Insert(9, 1.0)

	ei, _, _ := q.Pop()
	if ei != 2 {
		t.Errorf("expected tie broken by lowest edge index (2), got %d", ei)
	}
}

func TestQueueRekeyChangesCost(t *testing.T) {
	q := NewQueue()
	q.Insert(0, 10.0)
	q.Insert(1, 1.0)

	q.Rekey(0, 0.5)

	ei, cost, ok := q.Peek()
	if !ok || ei != 0 || cost != 0.5 {
		t.Errorf("expected edge 0 at cost 0.5 to be cheapest after rekey, got ei=%d cost=%f ok=%v", ei, cost, ok)
	}
}

func TestQueueRemoveAndContains(t *testing.T) {
	q := NewQueue()
	q.Insert(3, 1.0)
	if !q.Contains(3) {
		t.Fatal("expected queue to contain edge 3")
	}
	q.Remove(3)
	if q.Contains(3) {
		t.Error("expected edge 3 to be gone after Remove")
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got len %d", q.Len())
	}
}

func TestQueueCost(t *testing.T) {
	q := NewQueue()
	q.Insert(7, 4.2)
	cost, ok := q.Cost(7)
	if !ok || cost != 4.2 {
		t.Errorf("expected cost 4.2 for edge 7, got %f ok=%v", cost, ok)
	}
	if _, ok := q.Cost(99); ok {
		t.Error("expected ok=false for an unqueued edge")
	}
}

func TestQueuePopEmpty(t *testing.T) {
	q := NewQueue()
	if _, _, ok := q.Pop(); ok {
		t.Error("expected Pop on an empty queue to report ok=false")
	}
}
