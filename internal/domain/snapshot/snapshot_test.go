package snapshot_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	snapshot "github.com/okian/clanpulse/internal/domain/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryStore(t *testing.T) {
	Convey("Given a new in-memory snapshot store", t, func() {
		s := snapshot.NewInMemoryStore()

		Convey("When a tag has never been observed", func() {
			_, ok := s.GetLast(context.Background(), "#AAA")

			Convey("Then the lookup reports no data", func() {
				So(ok, ShouldBeFalse)
				So(s.Size(), ShouldEqual, 0)
			})
		})

		Convey("When a score is recorded", func() {
			s.SetLast(context.Background(), "#AAA", 3400)

			Convey("Then it is returned on the next lookup", func() {
				trophies, ok := s.GetLast(context.Background(), "#AAA")
				So(ok, ShouldBeTrue)
				So(trophies, ShouldEqual, 3400)
				So(s.Size(), ShouldEqual, 1)
			})

			Convey("And overwriting it does not grow the store", func() {
				s.SetLast(context.Background(), "#AAA", 3385)
				trophies, ok := s.GetLast(context.Background(), "#AAA")
				So(ok, ShouldBeTrue)
				So(trophies, ShouldEqual, 3385)
				So(s.Size(), ShouldEqual, 1)
			})
		})

		Convey("When created with an initial capacity", func() {
			sized := snapshot.NewInMemoryStore(snapshot.WithInitialCapacity(200))

			Convey("Then it behaves like an empty store", func() {
				So(sized.Size(), ShouldEqual, 0)
			})
		})

		Convey("When many goroutines write disjoint tags", func() {
			const writers = 16
			var wg sync.WaitGroup
			wg.Add(writers)
			for i := 0; i < writers; i++ {
				go func(i int) {
					defer wg.Done()
					tag := fmt.Sprintf("#P%03d", i)
					for score := 0; score < 100; score++ {
						s.SetLast(context.Background(), tag, score)
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every tag holds its final score", func() {
				So(s.Size(), ShouldEqual, writers)
				for i := 0; i < writers; i++ {
					trophies, ok := s.GetLast(context.Background(), fmt.Sprintf("#P%03d", i))
					So(ok, ShouldBeTrue)
					So(trophies, ShouldEqual, 99)
				}
			})
		})
	})
}
