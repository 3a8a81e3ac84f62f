package logging

import "testing"

func TestNameToLevelValid(t *testing.T) {
	cases := []struct {
		name string
		want Level
	}{
		{"disabled", LevelDisabled},
		{"error", LevelError},
		{"warn", LevelWarn},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"trace", LevelTrace},
	}
	for _, c := range cases {
		got, ok := NameToLevel(c.name)
		if !ok {
			t.Errorf("NameToLevel(%s): ok = false, want true", c.name)
		}
		if got != c.want {
			t.Errorf("NameToLevel(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNameToLevelInvalid(t *testing.T) {
	if _, ok := NameToLevel("verbose"); ok {
		t.Error("NameToLevel(verbose): ok = true, want false")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	// None of these should panic on a nil *Logger.
	l.Print("hello")
	l.Printf("hello %s", "world")
	l.Warn(nil)
	l.Error(nil)
	if sub := l.Sublogger("child"); sub != nil {
		t.Errorf("Sublogger on a nil Logger should stay nil, got %v", sub)
	}
}

func TestSubloggerInheritsLevel(t *testing.T) {
	root := NewRoot(LevelWarn)
	sub := root.Sublogger("walk")
	if !sub.enabled(LevelWarn) {
		t.Error("sublogger should inherit parent's level")
	}
	if sub.enabled(LevelInfo) {
		t.Error("sublogger should not be enabled above its inherited level")
	}
}
