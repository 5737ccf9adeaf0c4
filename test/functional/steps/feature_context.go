package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"climate-monitor/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

type FeatureContext struct {
	monitor      *driver.MonitorDriver
	workDir      string
	response     *http.Response
	responseData map[string]any
	responseList []map[string]any
	listLimit    int
	require      *require.Assertions
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	ctx.Before(fc.setUp)
	ctx.After(fc.tearDown)

	// Monitor steps
	ctx.Given(`^the board sends "([^"]*)"$`, fc.theBoardSends)
	ctx.Given(`^the temperature thresholds are (-?\d+(?:\.\d+)?) cold and (-?\d+(?:\.\d+)?) hot$`, fc.theTemperatureThresholdsAre)
	ctx.When(`^the monitor processes the board output$`, fc.theMonitorProcessesTheBoardOutput)
	ctx.When(`^the monitor is interrupted$`, fc.theMonitorIsInterrupted)
	ctx.Then(`^the board should receive "([^"]*)"$`, fc.theBoardShouldReceive)
	ctx.Then(`^the board should receive the commands "([^"]*)"$`, fc.theBoardShouldReceiveTheCommands)
	ctx.Then(`^the board should receive no commands$`, fc.theBoardShouldReceiveNoCommands)
	ctx.Then(`^the last command sent to the board should be "([^"]*)"$`, fc.theLastCommandShouldBe)
	ctx.Then(`^the serial port should be closed$`, fc.theSerialPortShouldBeClosed)
	ctx.Then(`^the console should show "([^"]*)"$`, fc.theConsoleShouldShow)
	ctx.Then(`^the CSV log should have the header "([^"]*)"$`, fc.theCSVLogShouldHaveTheHeader)
	ctx.Then(`^the CSV log should contain (\d+) readings?$`, fc.theCSVLogShouldContainReadings)
	ctx.Then(`^the CSV log should not exist$`, fc.theCSVLogShouldNotExist)
	ctx.Then(`^CSV row (\d+) should end with "([^"]*)"$`, fc.csvRowShouldEndWith)

	// Reading API steps
	ctx.When(`^I request the latest reading$`, fc.iRequestTheLatestReading)
	ctx.When(`^I list the last (\d+) readings$`, fc.iListTheLastReadings)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the reading should have "([^"]*)" equal to "([^"]*)"$`, fc.theReadingShouldHaveFieldEqualTo)
	ctx.Then(`^the list should contain (\d+) readings?$`, fc.theListShouldContainReadings)
	ctx.Then(`^reading (\d+) of the list should have "([^"]*)" equal to "([^"]*)"$`, fc.readingOfTheListShouldHaveFieldEqualTo)
}

func (fc *FeatureContext) setUp(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	dir, err := os.MkdirTemp("", "climate-monitor-functional-*")
	if err != nil {
		return ctx, err
	}
	fc.workDir = dir
	fc.monitor = driver.NewMonitorDriver(dir)
	fc.response = nil
	fc.responseData = nil
	fc.responseList = nil
	fc.listLimit = 0
	fc.require = require.New(godog.T(ctx))
	return ctx, nil
}

func (fc *FeatureContext) tearDown(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
	if fc.response != nil {
		fc.response.Body.Close()
	}
	if fc.monitor != nil {
		fc.monitor.Stop()
	}
	return ctx, os.RemoveAll(fc.workDir)
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %q: %w", string(data), err)
	}
	return nil
}
