package parser_test

import (
	"fmt"
	"math/rand"
	"strconv"

	"climate-monitor/internal/monitor/parser"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseLine", func() {
	DescribeTable("well formed lines",
		func(line string, temperature, humidity float64) {
			result := parser.ParseLine(line)

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.OK()).To(BeTrue())
			Expect(result.Temperature).To(Equal(temperature))
			Expect(result.Humidity).To(Equal(humidity))
		},
		Entry("degree sign", "Temperature: 82.0°F, Humidity: 65.0%", 82.0, 65.0),
		Entry("double encoded degree sign", "Temperature: 72.5Â°F, Humidity: 45.0%", 72.5, 45.0),
		Entry("firmware spacing", "Temperature: 72.50 Â°F, Humidity: 45.00%", 72.5, 45.0),
		Entry("celsius", "Temperature: 21.5°C, Humidity: 40%", 21.5, 40.0),
		Entry("bare unit letter", "Temperature: 70F, Humidity: 45 %", 70.0, 45.0),
		Entry("no unit", "Temperature: 70, Humidity: 45", 70.0, 45.0),
		Entry("negative temperature", "Temperature: -4.2°F, Humidity: 12.0%", -4.2, 12.0),
		Entry("surrounding whitespace", "  Temperature :  70.0°F ,  Humidity :  45.0%  ", 70.0, 45.0),
	)

	DescribeTable("malformed lines",
		func(line string) {
			result := parser.ParseLine(line)

			Expect(result.OK()).To(BeFalse())
			Expect(result.Err).To(MatchError(parser.ErrMalformedLine))
			Expect(result.Temperature).To(BeZero())
			Expect(result.Humidity).To(BeZero())
		},
		Entry("garbage", "garbage"),
		Entry("empty", ""),
		Entry("missing comma", "Temperature: 70.0°F Humidity: 45.0%"),
		Entry("missing temperature colon", "Temperature 70.0°F, Humidity: 45.0%"),
		Entry("missing humidity colon", "Temperature: 70.0°F, Humidity 45.0%"),
		Entry("wrong segment order", "Humidity: 45.0%, Temperature: 70.0°F"),
		Entry("firmware error line", "ERROR: Failed to read sensor"),
	)

	DescribeTable("non numeric values",
		func(line string) {
			result := parser.ParseLine(line)

			Expect(result.OK()).To(BeFalse())
			Expect(result.Err).To(MatchError(parser.ErrNonNumericValue))
			Expect(result.Temperature).To(BeZero())
			Expect(result.Humidity).To(BeZero())
		},
		Entry("word temperature", "Temperature: warm, Humidity: 45.0%"),
		Entry("word humidity", "Temperature: 70.0°F, Humidity: damp"),
		Entry("unknown unit marker", "Temperature: 70.0 K, Humidity: 45.0%"),
		Entry("nan from a failed sensor read", "Temperature: nan°F, Humidity: nan%"),
		Entry("extra comma in humidity", "Temperature: 70.0°F, Humidity: 45.0%, Light: 3"),
		Entry("empty value", "Temperature: °F, Humidity: 45.0%"),
	)

	It("should return exactly the printed numbers", func() {
		random := rand.New(rand.NewSource(GinkgoRandomSeed()))
		for range 500 {
			temperature := (random.Float64() * 200) - 50
			humidity := random.Float64() * 100
			line := fmt.Sprintf("Temperature: %s°F, Humidity: %s%%",
				strconv.FormatFloat(temperature, 'f', -1, 64),
				strconv.FormatFloat(humidity, 'f', -1, 64),
			)

			result := parser.ParseLine(line)

			Expect(result.Err).NotTo(HaveOccurred(), line)
			Expect(result.Temperature).To(Equal(temperature), line)
			Expect(result.Humidity).To(Equal(humidity), line)
		}
	})
})

var _ = Describe("IsReadingLine", func() {
	It("should recognize tagged lines", func() {
		Expect(parser.IsReadingLine("Temperature: 70.0°F, Humidity: 45.0%")).To(BeTrue())
		Expect(parser.IsReadingLine("  Temperature: 70.0°F")).To(BeTrue())
	})

	It("should ignore device status lines", func() {
		Expect(parser.IsReadingLine("DHT11 Sensor Started")).To(BeFalse())
		Expect(parser.IsReadingLine("Red LED ON")).To(BeFalse())
		Expect(parser.IsReadingLine("garbage")).To(BeFalse())
	})
})
