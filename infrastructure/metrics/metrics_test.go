package metrics

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCoinbaseVerdict(t *testing.T) {
	before := testutil.ToFloat64(CoinbaseVerdicts.WithLabelValues("bad-cb-amount"))
	acceptedBefore := testutil.ToFloat64(CoinbaseVerdicts.WithLabelValues(AcceptedReason))

	RecordCoinbaseVerdict(false, "bad-cb-amount")
	RecordCoinbaseVerdict(true, "")

	if got := testutil.ToFloat64(CoinbaseVerdicts.WithLabelValues("bad-cb-amount")); got != before+1 {
		t.Fatalf("expected %v rejections but got %v", before+1, got)
	}
	if got := testutil.ToFloat64(CoinbaseVerdicts.WithLabelValues(AcceptedReason)); got != acceptedBefore+1 {
		t.Fatalf("expected %v acceptances but got %v", acceptedBefore+1, got)
	}
}

func TestRecordActiveAnchor(t *testing.T) {
	RecordActiveAnchor(true, 30)
	if got := testutil.ToFloat64(ActiveAnchorLocalHeight); got != 30 {
		t.Fatalf("expected active height 30 but got %v", got)
	}
	RecordActiveAnchor(false, 0)
	if got := testutil.ToFloat64(ActiveAnchorLocalHeight); got != -1 {
		t.Fatalf("expected active height -1 but got %v", got)
	}
}

func TestServer(t *testing.T) {
	server, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewServer: %s", err)
	}
	server.Start()
	defer func() {
		err := server.Stop()
		if err != nil {
			t.Fatalf("Stop: %s", err)
		}
	}()

	ExternalHeight.Set(42)
	response, err := http.Get("http://" + server.Address() + "/metrics")
	if err != nil {
		t.Fatalf("Get: %s", err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("ReadAll: %s", err)
	}
	if !strings.Contains(string(body), "anchord_external_height 42") {
		t.Fatalf("metrics output doesn't contain the external height:\n%s", body)
	}
}
