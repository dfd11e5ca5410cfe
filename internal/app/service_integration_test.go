package service_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	service "github.com/okian/clanpulse/internal/app"
	"github.com/okian/clanpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service driven through a full random walk", t, func() {
		fetcher := &stubFetcher{}
		sender := &captureSender{}
		svc := newTestService(fetcher, sender, service.WithQueueSize(4096))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		const players = 8
		const ticks = 40

		rng := rand.New(rand.NewSource(42))
		scores := make(map[string]int, players)
		baseline := make(map[string]int, players)
		expectedNet := make(map[string]int, players)
		expectedEvents := 0

		roster := func() []model.PlayerObservation {
			out := make([]model.PlayerObservation, 0, players)
			for p := 0; p < players; p++ {
				tag := fmt.Sprintf("#W%02d", p)
				out = append(out, obs(tag, "Walker "+tag, scores[tag]))
			}
			return out
		}

		for p := 0; p < players; p++ {
			tag := fmt.Sprintf("#W%02d", p)
			scores[tag] = 2000 + rng.Intn(1000)
			baseline[tag] = scores[tag]
		}

		Convey("When ticking through many score changes", func() {
			// Baseline tick: no events expected.
			fetcher.set(roster())
			So(svc.OnPollTick(ctx), ShouldBeNil)

			for tick := 0; tick < ticks; tick++ {
				for p := 0; p < players; p++ {
					tag := fmt.Sprintf("#W%02d", p)
					switch rng.Intn(3) {
					case 0:
						delta := 1 + rng.Intn(40)
						scores[tag] += delta
						expectedNet[tag] += delta
						expectedEvents++
					case 1:
						delta := 1 + rng.Intn(40)
						scores[tag] -= delta
						expectedNet[tag] -= delta
						expectedEvents++
					}
				}
				fetcher.set(roster())
				So(svc.OnPollTick(ctx), ShouldBeNil)
			}

			Convey("Then each player's net gain equals the snapshot delta", func() {
				for p := 0; p < players; p++ {
					tag := fmt.Sprintf("#W%02d", p)
					stats, err := svc.PlayerStatus(ctx, tag)
					So(err, ShouldBeNil)
					So(stats.NetGain, ShouldEqual, expectedNet[tag])
					So(stats.NetGain, ShouldEqual, scores[tag]-baseline[tag])
					So(stats.Trophies, ShouldEqual, scores[tag])
				}
			})

			Convey("And replaying each event log reproduces the aggregate", func() {
				for p := 0; p < players; p++ {
					tag := fmt.Sprintf("#W%02d", p)
					events, err := svc.PlayerEvents(ctx, tag)
					So(err, ShouldBeNil)

					net, attacks, defends := 0, 0, 0
					for _, ev := range events {
						if ev.Kind == "attack" {
							net += ev.Magnitude
							attacks++
						} else {
							net -= ev.Magnitude
							defends++
						}
					}

					stats, err := svc.PlayerStatus(ctx, tag)
					So(err, ShouldBeNil)
					So(net, ShouldEqual, stats.NetGain)
					So(attacks, ShouldEqual, stats.AttackCount)
					So(defends, ShouldEqual, stats.DefendCount)
				}
			})

			Convey("And every event produced a delivered notification", func() {
				So(waitFor(func() bool { return len(sender.delivered()) == expectedEvents }), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent ticks and boundary checks", t, func() {
		fetcher := &stubFetcher{}
		sender := &captureSender{}
		svc := newTestService(fetcher, sender, service.WithQueueSize(4096))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		fetcher.set([]model.PlayerObservation{obs("#P1", "Alpha", 3000)})
		So(svc.OnPollTick(ctx), ShouldBeNil)

		Convey("When they race", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_ = svc.OnPollTick(ctx)
				}()
				go func() {
					defer wg.Done()
					_ = svc.OnDayBoundaryCheck(ctx)
				}()
			}
			wg.Wait()

			Convey("Then the service state stays coherent", func() {
				stats, err := svc.PlayerStatus(ctx, "#P1")
				So(err, ShouldBeNil)
				So(stats.Trophies, ShouldEqual, 3000)
				So(stats.NetGain, ShouldEqual, 0)
			})
		})
	})
}
