package probe

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// portDialTimeout bounds the single connection attempt made by PortAvailable.
const portDialTimeout = 200 * time.Millisecond

// PortAvailable reports whether nothing is listening on the given localhost
// port. A refused connection means the port is free; an accepted connection
// means another process (likely a second instance) already occupies it. Any
// other dial outcome is classified as unavailable so an ambiguous network
// condition never results in a second server being spawned.
func PortAvailable(log zerolog.Logger, port int) bool {
	addr := net.JoinHostPort("127.0.0.1", fmt.Sprintf("%d", port))

	conn, err := net.DialTimeout("tcp", addr, portDialTimeout)
	if err == nil {
		conn.Close()
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	log.Warn().Err(err).Int("port", port).Msg("unexpected error probing port")
	return false
}
