package steps

import (
	"strconv"
	"strings"
)

func (fc *FeatureContext) theBoardSends(line string) error {
	fc.monitor.Board.Feed(line)
	return nil
}

func (fc *FeatureContext) theTemperatureThresholdsAre(cold, hot string) error {
	coldValue, err := strconv.ParseFloat(cold, 64)
	fc.require.NoError(err)
	hotValue, err := strconv.ParseFloat(hot, 64)
	fc.require.NoError(err)

	fc.monitor.Config.TempColdThreshold = coldValue
	fc.monitor.Config.TempHotThreshold = hotValue
	return nil
}

func (fc *FeatureContext) theMonitorProcessesTheBoardOutput() error {
	if err := fc.monitor.Start(); err != nil {
		return err
	}
	return fc.monitor.WaitProcessed()
}

func (fc *FeatureContext) theMonitorIsInterrupted() error {
	fc.monitor.Interrupt()
	return nil
}

func (fc *FeatureContext) theBoardShouldReceive(command string) error {
	fc.require.Contains(fc.monitor.Board.Commands(), command)
	return nil
}

func (fc *FeatureContext) theBoardShouldReceiveTheCommands(commands string) error {
	fc.require.Equal(strings.Split(commands, ","), fc.monitor.Board.Commands())
	return nil
}

func (fc *FeatureContext) theBoardShouldReceiveNoCommands() error {
	fc.require.Empty(fc.monitor.Board.Commands())
	return nil
}

func (fc *FeatureContext) theLastCommandShouldBe(command string) error {
	commands := fc.monitor.Board.Commands()
	fc.require.NotEmpty(commands)
	fc.require.Equal(command, commands[len(commands)-1])
	return nil
}

func (fc *FeatureContext) theSerialPortShouldBeClosed() error {
	fc.require.True(fc.monitor.Board.Closed(), "serial port should be closed")
	return nil
}

func (fc *FeatureContext) theConsoleShouldShow(text string) error {
	fc.require.Contains(fc.monitor.Console(), text)
	return nil
}

func (fc *FeatureContext) theCSVLogShouldHaveTheHeader(header string) error {
	lines, err := fc.monitor.CSVLines()
	fc.require.NoError(err)
	fc.require.NotEmpty(lines, "CSV log should exist")
	fc.require.Equal(header, lines[0])
	return nil
}

func (fc *FeatureContext) theCSVLogShouldContainReadings(count int) error {
	lines, err := fc.monitor.CSVLines()
	fc.require.NoError(err)
	fc.require.Len(lines, count+1, "header plus one row per reading")
	return nil
}

func (fc *FeatureContext) theCSVLogShouldNotExist() error {
	lines, err := fc.monitor.CSVLines()
	fc.require.NoError(err)
	fc.require.Empty(lines)
	return nil
}

func (fc *FeatureContext) csvRowShouldEndWith(row int, suffix string) error {
	lines, err := fc.monitor.CSVLines()
	fc.require.NoError(err)
	fc.require.Greater(len(lines), row, "CSV row %d should exist", row)
	fc.require.True(strings.HasSuffix(lines[row], suffix), "row %q should end with %q", lines[row], suffix)
	return nil
}
