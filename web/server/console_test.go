package server

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestConsoleLog_BasicLogging(t *testing.T) {
	console := NewConsoleLog(10, false)

	testMessage := "Test log message"
	console.Printf("%s\n", testMessage)

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Message != testMessage+"\n" {
		t.Errorf("Expected message '%s', got '%s'", testMessage+"\n", msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestConsoleLog_ErrorLevel(t *testing.T) {
	console := NewConsoleLog(4, false)
	console.Errorf("bad %d\n", 42)

	messages := console.Messages()
	if len(messages) != 1 || messages[0].Level != "error" || messages[0].Message != "bad 42\n" {
		t.Errorf("Unexpected messages: %+v", messages)
	}
}

func TestConsoleLog_KeepsMostRecent(t *testing.T) {
	console := NewConsoleLog(3, false)
	for i := 1; i <= 5; i++ {
		console.Printf("Message %d", i)
	}

	messages := console.Messages()
	if len(messages) != 3 {
		t.Fatalf("Expected 3 retained messages, got %d", len(messages))
	}
	for i, msg := range messages {
		expected := fmt.Sprintf("Message %d", i+3)
		if msg.Message != expected {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expected, msg.Message)
		}
	}
}

func TestConsoleLog_ExactlyFull(t *testing.T) {
	console := NewConsoleLog(2, false)
	console.Printf("a")
	console.Printf("b")

	messages := console.Messages()
	if len(messages) != 2 || messages[0].Message != "a" || messages[1].Message != "b" {
		t.Errorf("Unexpected messages: %+v", messages)
	}
}

func TestConsoleLog_ConcurrentWriters(t *testing.T) {
	console := NewConsoleLog(1000, false)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				console.Printf("tick")
			}
		}()
	}
	wg.Wait()

	if got := len(console.Messages()); got != 400 {
		t.Errorf("Expected 400 messages, got %d", got)
	}
}
