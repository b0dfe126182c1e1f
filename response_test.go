package redisrest

import (
	"encoding/json"
	"testing"
)

func TestParseResponses(t *testing.T) {
	body := `[{"result":"OK"},{"error":"WRONGTYPE Operation against a key holding the wrong kind of value"},{"result":3}]`

	responses, err := ParseResponses([]byte(body))
	if err != nil {
		t.Fatalf("ParseResponses: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}

	if r, ok := responses[0].Result(); !ok {
		t.Errorf("first response should succeed")
	} else if s, _ := r.String(); s != "OK" {
		t.Errorf("first result = %q", s)
	}
	if responses[0].Err() != nil {
		t.Errorf("success variant carries an error")
	}

	if responses[1].OK() {
		t.Errorf("second response should fail")
	}
	if _, ok := responses[1].Result(); ok {
		t.Errorf("failure variant exposes a result")
	}
	if msg := responses[1].Err().Message; msg != "WRONGTYPE Operation against a key holding the wrong kind of value" {
		t.Errorf("second error = %q", msg)
	}

	if r, ok := responses[2].Result(); !ok {
		t.Errorf("third response should succeed")
	} else if n, _ := r.Int(); n != 3 {
		t.Errorf("third result = %d", n)
	}
}

func TestResponseUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ok      bool
		message string
		wantErr bool
	}{
		{name: "Null Result", input: `{"result":null}`, ok: true},
		{name: "Error Wins", input: `{"result":1,"error":"ERR"}`, message: "ERR"},
		{name: "Non String Error", input: `{"error":{"code":1}}`, message: `{"code":1}`},
		{name: "Empty Object", input: `{}`, wantErr: true},
		{name: "Not Object", input: `"OK"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Response
			err := json.Unmarshal([]byte(tt.input), &r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if r.OK() != tt.ok {
				t.Errorf("OK() = %v, want %v", r.OK(), tt.ok)
			}
			if !tt.ok && r.Err().Message != tt.message {
				t.Errorf("Err().Message = %q, want %q", r.Err().Message, tt.message)
			}
		})
	}
}

func TestResponseConstructors(t *testing.T) {
	res, _ := NewResult(String{Value: "v"})
	if !Success(res).OK() {
		t.Errorf("Success() should be OK")
	}
	if f := Failure("boom"); f.OK() || f.Err().Error() != "boom" {
		t.Errorf("Failure() = %#v", f)
	}
}
