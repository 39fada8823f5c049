package stats_test

import (
	"testing"

	"github.com/okian/scout/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRawValue(t *testing.T) {
	Convey("Given a stats record", t, func() {
		raw := stats.Raw{
			MatchesPlayed:   38,
			Goals:           20,
			CorrectPasses:   300,
			IncorrectPasses: 100,
			Saves:           7,
		}

		Convey("When reading known keys", func() {
			Convey("Then the counters are returned as floats", func() {
				So(raw.Value(stats.MatchesPlayed), ShouldEqual, 38.0)
				So(raw.Value(stats.Goals), ShouldEqual, 20.0)
				So(raw.Value(stats.CorrectPasses), ShouldEqual, 300.0)
				So(raw.Value(stats.IncorrectPasses), ShouldEqual, 100.0)
				So(raw.Value(stats.Saves), ShouldEqual, 7.0)
			})
		})

		Convey("When reading an absent goalkeeper counter", func() {
			Convey("Then it reads as zero", func() {
				So(raw.Value(stats.GoalsConceded), ShouldEqual, 0.0)
				So(raw.Value(stats.HighClaims), ShouldEqual, 0.0)
			})
		})

		Convey("When reading an unknown key", func() {
			Convey("Then it reads as zero", func() {
				So(raw.Value(stats.Key("xg")), ShouldEqual, 0.0)
			})
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given the key set", t, func() {
		keys := stats.Keys()

		Convey("Then every key is valid and maps to a distinct counter", func() {
			So(len(keys), ShouldEqual, 17)
			seen := make(map[stats.Key]bool)
			for i, k := range keys {
				So(k.Valid(), ShouldBeTrue)
				So(seen[k], ShouldBeFalse)
				seen[k] = true

				// Build a record where only the i-th counter is set.
				var raw stats.Raw
				setOnly(&raw, i)
				So(raw.Value(k), ShouldEqual, 1.0)
			}
		})

		Convey("Then unknown keys are invalid", func() {
			So(stats.Key("").Valid(), ShouldBeFalse)
			So(stats.Key("tackles").Valid(), ShouldBeFalse)
		})
	})
}

func setOnly(r *stats.Raw, i int) {
	fields := []*int{
		&r.MatchesPlayed, &r.Goals, &r.Assists, &r.YellowCards, &r.RedCards,
		&r.CorrectPasses, &r.IncorrectPasses, &r.SuccessfulShots, &r.UnsuccessfulShots,
		&r.Interceptions, &r.Dribbles,
		&r.GoalsConceded, &r.Saves, &r.CleanSheets, &r.PenaltiesSaved, &r.PenaltiesFaced, &r.HighClaims,
	}
	*fields[i] = 1
}
