package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"github.com/sooomo/bst/collection"
)

type Scenario struct {
	Name  string
	Check func() error
}

type Result struct {
	Name string
	Err  error
}

func (r Result) Passed() bool { return r.Err == nil }

func expect(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf(format, args...)
}

// All 返回固定的演示场景，前三个与最初的三项测试一致
func All() []Scenario {
	return []Scenario{
		{Name: "integers", Check: checkIntegers},
		{Name: "strings", Check: checkStrings},
		{Name: "clear", Check: checkClear},
		{Name: "duplicates", Check: checkDuplicates},
		{Name: "empty", Check: checkEmpty},
		{Name: "nil rejected", Check: checkNilRejected},
	}
}

func checkIntegers() error {
	tree := collection.NewBinarySearchTree[int]()
	vals := []int{10, 5, 15, 2, 7}
	tree.InsertAll(vals...)
	for _, v := range vals {
		if err := expect(tree.Contains(v), "contains(%d) = false", v); err != nil {
			return err
		}
	}
	return expect(tree.Size() == 5, "size = %d, want 5", tree.Size())
}

func checkStrings() error {
	tree := collection.NewBinarySearchTree[string]()
	vals := []string{"banana", "apple", "cherry"}
	tree.InsertAll(vals...)
	for _, v := range vals {
		if err := expect(tree.Contains(v), "contains(%q) = false", v); err != nil {
			return err
		}
	}
	return expect(tree.Size() == 3, "size = %d, want 3", tree.Size())
}

func checkClear() error {
	tree := collection.NewBinarySearchTree[int]()
	tree.InsertAll(10, 20, 30)
	if err := expect(tree.Size() == 3, "size = %d, want 3", tree.Size()); err != nil {
		return err
	}
	tree.Clear()
	return expect(tree.IsEmpty(), "not empty after clear")
}

func checkDuplicates() error {
	tree := collection.NewBinarySearchTree[int]()
	tree.InsertAll(5, 5)
	if err := expect(tree.Size() == 2, "size = %d, want 2", tree.Size()); err != nil {
		return err
	}
	return expect(tree.Contains(5), "contains(5) = false")
}

func checkEmpty() error {
	tree := collection.NewBinarySearchTree[int]()
	if err := expect(tree.IsEmpty(), "new tree not empty"); err != nil {
		return err
	}
	if err := expect(tree.Size() == 0, "size = %d, want 0", tree.Size()); err != nil {
		return err
	}
	return expect(!tree.Contains(42), "contains(42) = true")
}

func checkNilRejected() error {
	tree := collection.NewBinarySearchTree[int]()
	tree.InsertAll(1)
	insertErr := tree.Insert(nil)
	if err := expect(errors.Is(insertErr, collection.ErrInvalidArgument), "insert(nil) err = %v", insertErr); err != nil {
		return err
	}
	return expect(tree.Size() == 1, "size = %d, want 1", tree.Size())
}

func runOne(s Scenario) (res Result) {
	res.Name = s.Name
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v", r)
		}
	}()
	res.Err = s.Check()
	return res
}

// Run 把每个场景提交到协程池，结果顺序与 scenarios 一致。每个场景使用自己的树。
func Run(ctx context.Context, pool *ants.Pool, logger zerolog.Logger, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, len(scenarios))
	var wg sync.WaitGroup
	for i, s := range scenarios {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = runOne(s)
			ev := logger.Debug()
			if !results[i].Passed() {
				ev = logger.Warn().Err(results[i].Err)
			}
			ev.Str("scenario", s.Name).Bool("passed", results[i].Passed()).Msg("scenario finished")
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	return results, nil
}

func Print(w io.Writer, results []Result) {
	for i, r := range results {
		status := "Passed"
		if !r.Passed() {
			status = "Failed"
		}
		fmt.Fprintf(w, "Test %d (%s): %s\n", i+1, r.Name, status)
	}
}

func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed() {
			return false
		}
	}
	return true
}
