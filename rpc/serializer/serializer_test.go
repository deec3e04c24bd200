package serializer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/klind25/teller/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"Text": NewTextSerializer,
	"JSON": NewJSONSerializer,
	"GOB":  NewGOBSerializer,
}

// testRequests creates a set of test requests with different fields filled
func testRequests() []common.Request {
	return []common.Request{
		// Deposit with a fractional amount
		*common.NewDepositRequest(42, decimal.RequireFromString("100.50")),

		// Withdraw
		*common.NewWithdrawRequest(7, decimal.RequireFromString("0.01")),

		// Balance query (no amount)
		*common.NewBalanceRequest(1001),

		// Upload with filename and content
		*common.NewUploadRequest(3, "notes.txt", "hello world"),

		// Download (filename only)
		*common.NewDownloadRequest(3, "notes.txt"),

		// Quit (type only)
		*common.NewQuitRequest(),
	}
}

// testResponses creates a set of test responses with different fields filled
func testResponses() []common.Response {
	return []common.Response{
		// Balance response
		*common.NewBalanceResponse(decimal.RequireFromString("500.25")),

		// File content response
		*common.NewFileResponse("file content here"),

		// Plain acknowledgement
		*common.NewAckResponse("goodbye"),

		// Failure
		*common.NewErrorResponse("insufficient funds"),
	}
}

// TestSerializerRoundTrip tests that requests and responses can be
// serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	requests := testRequests()
	responses := testResponses()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, req := range requests {
				// Serialize
				data, err := serializer.SerializeRequest(req)
				if err != nil {
					t.Errorf("Failed to serialize request %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Request
				err = serializer.DeserializeRequest(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize request %d: %v", i, err)
					continue
				}

				// Compare
				if !req.Equal(&result) {
					t.Errorf("Request %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, req, result)
				}
			}

			for i, resp := range responses {
				// Serialize
				data, err := serializer.SerializeResponse(resp)
				if err != nil {
					t.Errorf("Failed to serialize response %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Response
				err = serializer.DeserializeResponse(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize response %d: %v", i, err)
					continue
				}

				// Compare
				if !resp.Equal(&result) {
					t.Errorf("Response %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, resp, result)
				}
			}
		})
	}
}

// TestRequestTypes tests each request type with each serializer
func TestRequestTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for reqType := common.ReqDeposit; reqType <= common.ReqQuit; reqType++ {
				req := common.Request{Type: reqType}

				// Serialize
				data, err := serializer.SerializeRequest(req)
				if err != nil {
					t.Errorf("Failed to serialize request type %s: %v", reqType.String(), err)
					continue
				}

				// Deserialize
				var result common.Request
				err = serializer.DeserializeRequest(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize request type %s: %v", reqType.String(), err)
					continue
				}

				// Check type
				if result.Type != reqType {
					t.Errorf("Request type doesn't match after round trip: Expected %s, got %s",
						reqType.String(), result.Type.String())
				}
			}
		})
	}
}

// TestTextSerializerWireFormat pins the exact payload bytes of the text
// encoding, which remote peers depend on
func TestTextSerializerWireFormat(t *testing.T) {
	serializer := NewTextSerializer()

	t.Run("DepositRequest", func(t *testing.T) {
		req := common.NewDepositRequest(42, decimal.RequireFromString("100.50"))

		data, err := serializer.SerializeRequest(*req)
		if err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}
		if got, want := string(data), "1|42|100.50||"; got != want {
			t.Fatalf("Wire payload mismatch: got %q, want %q", got, want)
		}

		var result common.Request
		if err := serializer.DeserializeRequest(data, &result); err != nil {
			t.Fatalf("Failed to deserialize: %v", err)
		}
		if !req.Equal(&result) {
			t.Fatalf("Request doesn't match after round trip:\nOriginal: %+v\nResult: %+v", req, result)
		}
	})

	t.Run("BalanceResponse", func(t *testing.T) {
		resp := common.NewBalanceResponse(decimal.RequireFromString("500.25"))

		data, err := serializer.SerializeResponse(*resp)
		if err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}
		if got, want := string(data), "1|500.25||OK"; got != want {
			t.Fatalf("Wire payload mismatch: got %q, want %q", got, want)
		}

		var result common.Response
		if err := serializer.DeserializeResponse(data, &result); err != nil {
			t.Fatalf("Failed to deserialize: %v", err)
		}
		if !resp.Equal(&result) {
			t.Fatalf("Response doesn't match after round trip:\nOriginal: %+v\nResult: %+v", resp, result)
		}
	})

	// The final field is "everything remaining", so it alone survives an
	// embedded delimiter
	t.Run("TrailingFieldKeepsDelimiters", func(t *testing.T) {
		req := common.NewUploadRequest(3, "notes.txt", "a|b|c")

		data, err := serializer.SerializeRequest(*req)
		if err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}

		var result common.Request
		if err := serializer.DeserializeRequest(data, &result); err != nil {
			t.Fatalf("Failed to deserialize: %v", err)
		}
		if result.Data != "a|b|c" {
			t.Fatalf("Trailing field mangled: got %q, want %q", result.Data, "a|b|c")
		}
	})

	// Integers outside the known type range still decode (the wire enum is
	// open); rejecting them is the server's job
	t.Run("UnknownTypeDecodes", func(t *testing.T) {
		var result common.Request
		if err := serializer.DeserializeRequest([]byte("99|0|0||"), &result); err != nil {
			t.Fatalf("Unexpected error for unknown type: %v", err)
		}
		if result.Type != common.RequestType(99) {
			t.Fatalf("Type mismatch: got %d, want 99", result.Type)
		}
	})
}

// TestInvalidTextData tests how the text serializer handles corrupt payloads
func TestInvalidTextData(t *testing.T) {
	serializer := NewTextSerializer()

	requestCases := []struct {
		name string
		data string
	}{
		{name: "Empty payload", data: ""},
		{name: "Too few delimiters", data: "1|42|100.50|"},
		{name: "No delimiters", data: "deposit"},
		{name: "Malformed type", data: "x|42|100.50||"},
		{name: "Negative type", data: "-1|42|100.50||"},
		{name: "Malformed user id", data: "1|abc|100.50||"},
		{name: "Malformed amount", data: "1|42|12.34.56||"},
		{name: "Empty amount", data: "1|42|||"},
	}

	for _, tc := range requestCases {
		t.Run("Request/"+tc.name, func(t *testing.T) {
			req := common.Request{Type: common.ReqQuit, UserID: 999}
			err := serializer.DeserializeRequest([]byte(tc.data), &req)
			if err == nil {
				t.Fatalf("Expected error but got none")
			}
			if !errors.Is(err, ErrMalformedMessage) {
				t.Errorf("Expected ErrMalformedMessage, got: %v", err)
			}
			// No partial assignment on failure
			if req.Type != common.ReqQuit || req.UserID != 999 {
				t.Errorf("Request modified despite decode failure: %+v", req)
			}
		})
	}

	responseCases := []struct {
		name string
		data string
	}{
		{name: "Empty payload", data: ""},
		{name: "Too few delimiters", data: "1|500.25|"},
		{name: "Bad success literal", data: "yes|500.25||OK"},
		{name: "Numeric success out of range", data: "2|500.25||OK"},
		{name: "Malformed balance", data: "1|abc||OK"},
	}

	for _, tc := range responseCases {
		t.Run("Response/"+tc.name, func(t *testing.T) {
			var resp common.Response
			err := serializer.DeserializeResponse([]byte(tc.data), &resp)
			if err == nil {
				t.Fatalf("Expected error but got none")
			}
			if !errors.Is(err, ErrMalformedMessage) {
				t.Errorf("Expected ErrMalformedMessage, got: %v", err)
			}
		})
	}
}

// TestDecimalScalePreserved guards the exact decimal rendering: a deposit of
// 100.50 must reach the wire as "100.50", never "100.5"
func TestDecimalScalePreserved(t *testing.T) {
	serializer := NewTextSerializer()

	amounts := map[string]string{
		"100.50":  "100.50",
		"0.10":    "0.10",
		"7":       "7",
		"0":       "0",
		"1234.00": "1234.00",
	}

	for in, want := range amounts {
		req := common.NewDepositRequest(1, decimal.RequireFromString(in))
		data, err := serializer.SerializeRequest(*req)
		if err != nil {
			t.Fatalf("Failed to serialize amount %s: %v", in, err)
		}

		var result common.Request
		if err := serializer.DeserializeRequest(data, &result); err != nil {
			t.Fatalf("Failed to deserialize amount %s: %v", in, err)
		}
		if got := result.Amount.String(); got != want {
			t.Errorf("Amount %s rendered as %q after round trip, want %q", in, got, want)
		}
	}
}
