package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/httpapi"
	"climate-monitor/internal/monitor/usecases"
	mockusecases "climate-monitor/test/unit/doubles/monitor/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

func evaluationAt(temperature, humidity float64, at time.Time) domain.Evaluation {
	reading, err := domain.NewReadingBuilder().
		WithTemperature(temperature).
		WithHumidity(humidity).
		WithTimestamp(at).
		Build()
	Expect(err).NotTo(HaveOccurred())
	return domain.Evaluate(reading, domain.Thresholds{TempHot: 78, TempCold: 60, HumidityHigh: 60, HumidityLow: 30})
}

var _ = Describe("ReadingController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockReadingService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
		at          time.Time
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockReadingService(ctrl)
		router = http.NewServeMux()
		httpapi.NewReadingController(mockService).AddRoutes(router)
		recorder = httptest.NewRecorder()
		at = time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("latest", func() {
		It("should return the most recent reading", func() {
			mockService.EXPECT().Latest(gomock.Any()).Return(evaluationAt(82, 65, at), nil)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings/latest", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.NewDecoder(recorder.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("temperature", 82.0))
			Expect(body).To(HaveKeyWithValue("humidity", 65.0))
			Expect(body).To(HaveKeyWithValue("timestamp", "2024-01-15 14:30:45"))
			Expect(body).To(HaveKeyWithValue("temperature_status", "hot"))
			Expect(body).To(HaveKeyWithValue("humidity_advisory", "high"))
			Expect(body).To(HaveKeyWithValue("command", "LED_RED"))
		})

		It("should return 404 before the first reading", func() {
			mockService.EXPECT().Latest(gomock.Any()).Return(domain.Evaluation{}, usecases.ErrReadingNotFound)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings/latest", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 500 when the history cannot be read", func() {
			mockService.EXPECT().Latest(gomock.Any()).Return(domain.Evaluation{}, errors.New("database is locked"))

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings/latest", nil))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Context("list", func() {
		It("should use the default limit", func() {
			mockService.EXPECT().
				Recent(gomock.Any(), usecases.DefaultRecentLimit).
				Return([]domain.Evaluation{evaluationAt(70, 45, at), evaluationAt(55, 20, at.Add(-time.Minute))}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body struct {
				Data []map[string]any `json:"data"`
			}
			Expect(json.NewDecoder(recorder.Body).Decode(&body)).To(Succeed())
			Expect(body.Data).To(HaveLen(2))
			Expect(body.Data[0]).To(HaveKeyWithValue("command", "LED_GREEN"))
			Expect(body.Data[1]).To(HaveKeyWithValue("command", "LED_BLUE"))
		})

		It("should pass the requested limit", func() {
			mockService.EXPECT().Recent(gomock.Any(), 5).Return([]domain.Evaluation{}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings?limit=5", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"data":[]}`))
		})

		It("should reject a non numeric limit", func() {
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings?limit=ten", nil))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 500 when the history cannot be read", func() {
			mockService.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/readings", nil))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
