package domain_test

import (
	"climate-monitor/internal/monitor/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluate", func() {
	thresholds := domain.Thresholds{TempHot: 78, TempCold: 60, HumidityHigh: 60, HumidityLow: 30}

	DescribeTable("classification",
		func(temperature, humidity float64, status domain.TemperatureStatus, advisory domain.HumidityAdvisory, command domain.IndicatorCommand) {
			reading := domain.Reading{Temperature: temperature, Humidity: humidity}

			evaluation := domain.Evaluate(reading, thresholds)

			Expect(evaluation.Reading).To(Equal(reading))
			Expect(evaluation.Temperature).To(Equal(status))
			Expect(evaluation.Humidity).To(Equal(advisory))
			Expect(evaluation.Command).To(Equal(command))
		},
		Entry("hot and humid", 82.0, 65.0, domain.TemperatureHot, domain.HumidityHigh, domain.IndicatorRed),
		Entry("comfortable", 70.0, 45.0, domain.TemperatureComfortable, domain.HumidityNone, domain.IndicatorGreen),
		Entry("cold and dry", 55.0, 20.0, domain.TemperatureCold, domain.HumidityLow, domain.IndicatorBlue),
		Entry("exactly hot threshold", 78.0, 45.0, domain.TemperatureComfortable, domain.HumidityNone, domain.IndicatorGreen),
		Entry("exactly cold threshold", 60.0, 45.0, domain.TemperatureComfortable, domain.HumidityNone, domain.IndicatorGreen),
		Entry("exactly high humidity", 70.0, 60.0, domain.TemperatureComfortable, domain.HumidityNone, domain.IndicatorGreen),
		Entry("exactly low humidity", 70.0, 30.0, domain.TemperatureComfortable, domain.HumidityNone, domain.IndicatorGreen),
		Entry("hot and dry", 90.0, 10.0, domain.TemperatureHot, domain.HumidityLow, domain.IndicatorRed),
	)

	It("should report whether a humidity advisory applies", func() {
		Expect(domain.Evaluate(domain.Reading{Temperature: 70, Humidity: 65}, thresholds).HasAdvisory()).To(BeTrue())
		Expect(domain.Evaluate(domain.Reading{Temperature: 70, Humidity: 45}, thresholds).HasAdvisory()).To(BeFalse())
	})

	It("should reject crossed thresholds", func() {
		Expect(domain.Thresholds{TempHot: 50, TempCold: 60}.Validate()).To(MatchError(domain.ErrInvalidThresholds))
		Expect(domain.Thresholds{HumidityHigh: 20, HumidityLow: 30}.Validate()).To(MatchError(domain.ErrInvalidThresholds))
		Expect(thresholds.Validate()).To(Succeed())
	})
})
