package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJSON(t *testing.T) {
	Convey("Given a value JSON cannot represent", t, func() {
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusOK, map[string]float64{"current_run_rate": math.Inf(1)})

		Convey("Then the response is a 500 with an error body", func() {
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			var body errorResponse
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Code, ShouldEqual, "internal")
		})
	})

	Convey("Given an ordinary value", t, func() {
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusCreated, map[string]int{"n": 1})

		Convey("Then status and body are written as given", func() {
			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(rec.Body.String(), ShouldEqual, "{\"n\":1}\n")
		})
	})
}
