package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anitrack-cli/anitrack/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "genre", "genres"), ShouldEqual, "1 genre")
		So(Quantify(2, "genre", "genres"), ShouldEqual, "2 genres")
		So(Quantify(0, "genre", "genres"), ShouldEqual, "0 genres")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		dir := filepath.Join("tmp", "delete")
		file := filepath.Join(dir, "a.json")
		So(filesystem.API().MkdirAll(dir, os.ModePerm), ShouldBeNil)
		So(afero.WriteFile(filesystem.API(), file, []byte("{}"), os.ModePerm), ShouldBeNil)

		Convey("Deleting the file keeps the directory", func() {
			So(Delete(file), ShouldBeNil)

			exists, _ := afero.Exists(filesystem.API(), dir)
			So(exists, ShouldBeTrue)
		})

		Convey("Deleting the directory removes everything", func() {
			So(Delete(dir), ShouldBeNil)

			exists, _ := afero.Exists(filesystem.API(), file)
			So(exists, ShouldBeFalse)
		})

		Convey("Deleting a missing path fails", func() {
			So(Delete(filepath.Join(dir, "missing")), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)

		item, ok := s.Pop()
		So(ok, ShouldBeTrue)
		So(item, ShouldEqual, 2)

		item, ok = s.Pop()
		So(ok, ShouldBeTrue)
		So(item, ShouldEqual, 1)

		item, ok = s.Pop()
		So(ok, ShouldBeFalse)
		So(item, ShouldEqual, 0)
	})
}
