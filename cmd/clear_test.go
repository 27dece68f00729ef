package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestClearStored(t *testing.T) {
	Convey("Given a stored genre name", t, func() {
		genres := storedData{what: "Genre names and counts", flag: "genres", path: where.Genres}
		file := filepath.Join(where.Genres(), "7.json")
		So(afero.WriteFile(filesystem.API(), file, []byte(`"Drama"`), os.ModePerm), ShouldBeNil)

		Convey("Clearing removes it", func() {
			So(clearStored(genres), ShouldBeNil)

			exists, err := afero.Exists(filesystem.API(), file)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})

	Convey("Clearing queries that were never saved is fine", t, func() {
		queries := storedData{what: "Search queries", flag: "queries", path: where.Queries}
		_ = filesystem.API().Remove(where.Queries())

		So(clearStored(queries), ShouldBeNil)
	})
}
