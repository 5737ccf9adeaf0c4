package communication_test

import (
	"context"
	"errors"
	"time"

	"climate-monitor/internal/monitor/communication"
	"climate-monitor/internal/monitor/communication/internal"
	"climate-monitor/internal/monitor/domain"
	mockmqtt "climate-monitor/test/unit/doubles/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("EvaluationPublisher", func() {
	var (
		ctrl       *gomock.Controller
		client     *mockmqtt.MockClient
		publisher  *communication.EvaluationPublisher
		evaluation domain.Evaluation
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
		publisher = communication.NewEvaluationPublisher(client, "climate-monitor/readings", "node-1")

		reading, err := domain.NewReadingBuilder().
			WithTemperature(82).
			WithHumidity(65).
			WithTimestamp(time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)).
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		evaluation = domain.Evaluate(reading, domain.Thresholds{TempHot: 78, TempCold: 60, HumidityHigh: 60, HumidityLow: 30})
	})

	ginkgo.It("should publish the evaluation payload on the configured topic", func() {
		client.EXPECT().Publish("climate-monitor/readings", internal.Evaluation{
			ID:                evaluation.Reading.ID.String(),
			Source:            "node-1",
			Temperature:       82,
			Humidity:          65,
			Timestamp:         "2024-03-09 14:05:07",
			TemperatureStatus: "hot",
			HumidityAdvisory:  "high",
			Command:           "LED_RED",
		}).Return(nil)

		gomega.Expect(publisher.Publish(context.Background(), evaluation)).To(gomega.Succeed())
	})

	ginkgo.It("should wrap client errors", func() {
		client.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))

		err := publisher.Publish(context.Background(), evaluation)

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("publishing to mqtt")))
	})
})
