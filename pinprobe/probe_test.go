package pinprobe

import "testing"

func TestProbeUnknownForNonIPFSURI(t *testing.T) {
	p := New("")
	if got := p.Probe("https://example.com/meta.json"); got != UnknownPin {
		t.Errorf("Probe(non-ipfs) = %q, want unknown", got)
	}
}

func TestProbeAvailableWhenAGatewayAnswers(t *testing.T) {
	p := New("")
	p.gateways = []string{"https://a.example/ipfs", "https://b.example/ipfs"}
	p.headFunc = func(url string) (int, error) {
		if url == "https://b.example/ipfs/Qm123" {
			return 200, nil
		}
		return 0, errNotFound
	}

	if got := p.Probe("ipfs://Qm123/meta.json"); got != Available {
		t.Errorf("Probe = %q, want available", got)
	}
}

func TestProbeUnavailableWhenNoGatewayAnswers(t *testing.T) {
	p := New("")
	p.gateways = []string{"https://a.example/ipfs"}
	p.headFunc = func(url string) (int, error) { return 0, errNotFound }

	if got := p.Probe("ipfs://Qm123/meta.json"); got != Unavailable {
		t.Errorf("Probe = %q, want unavailable", got)
	}
}

var errNotFound = fakeErr("not found")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
