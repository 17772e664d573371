// Package udsclient drives request/response round-trips of diagnostic
// services over an abstract transport. Framing, flow control and bus timing
// belong to the transport; this package owns encoding, response
// interpretation and negative-response handling.
package udsclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"github.com/LoveWonYoung/udskit/services"
	"github.com/LoveWonYoung/udskit/uds"
)

const recvPollInterval = 2 * time.Millisecond

// Transport moves complete request and response buffers. Implementations
// wrap an ISO-TP stack or any other segmented link.
type Transport interface {
	// Send queues one complete request buffer.
	Send(payload []byte) error
	// Recv returns the next complete response buffer, if one arrived.
	Recv() ([]byte, bool)
}

// UDSError is a negative response received from the server.
type UDSError struct {
	ServiceID byte
	NRC       uds.ResponseCode
	// Expected tells whether the standard allows this code for the service
	// that was addressed. Unexpected codes are still surfaced as errors.
	Expected bool
}

func (e *UDSError) Error() string {
	return fmt.Sprintf("negative response: SID=0x%02X, NRC=0x%02X (%s)", e.ServiceID, byte(e.NRC), e.NRC.Name())
}

// IsRetryable tells if the request may simply be sent again.
func (e *UDSError) IsRetryable() bool {
	return e.NRC.IsRetryable()
}

// Client executes diagnostic requests against one server.
type Client struct {
	transport Transport
	registry  *uds.Registry
	options   RequestOptions
	log       zerolog.Logger
}

// New builds a client over the given transport. A nil registry falls back
// to the standard service set.
func New(transport Transport, registry *uds.Registry, options RequestOptions, log zerolog.Logger) *Client {
	if registry == nil {
		registry = services.NewRegistry()
	}
	return &Client{
		transport: transport,
		registry:  registry,
		options:   options,
		log:       log,
	}
}

// Execute packs the record, runs the request and interprets the response
// into a typed record of the service's response type.
func (c *Client) Execute(ctx context.Context, svc *uds.Service, rec *uds.Record) (*uds.Record, error) {
	request, err := services.EncodeRequest(svc, rec)
	if err != nil {
		return nil, err
	}

	raw, err := c.Request(ctx, request)
	if err != nil {
		return nil, err
	}

	resp, err := uds.ParseResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.ServiceID != svc.RequestID() {
		return nil, fmt.Errorf("response for SID 0x%02X while waiting on 0x%02X", resp.ServiceID, svc.RequestID())
	}
	return svc.InterpretResponse(resp.Data, c.options.StandardVersion)
}

// Request sends a raw request buffer and waits for its response, retrying
// on retryable negative responses per the client options.
func (c *Client) Request(ctx context.Context, request []byte) ([]byte, error) {
	if len(request) == 0 {
		return nil, errors.New("request payload must not be empty")
	}

	var response []byte
	err := retry.Do(
		func() error {
			var err error
			response, err = c.singleRequest(ctx, request)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.options.MaxRetries)+1),
		retry.Delay(c.options.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var udsErr *UDSError
			return errors.As(err, &udsErr) && udsErr.IsRetryable()
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn().Uint("attempt", n).Err(err).
				Hex("sid", request[:1]).
				Msg("retrying request")
		}),
	)
	return response, err
}

// singleRequest performs one send/receive cycle. A ResponsePending negative
// response extends the deadline instead of failing the attempt.
func (c *Client) singleRequest(ctx context.Context, request []byte) ([]byte, error) {
	// drain stale responses before sending
	for {
		if _, ok := c.transport.Recv(); !ok {
			break
		}
	}

	requestSID := request[0]
	expectedResponseSID := requestSID + uds.PositiveResponseOffset

	if err := c.transport.Send(request); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	deadline := time.NewTimer(c.options.Timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("no response within %v for SID 0x%02X", c.options.Timeout, requestSID)
		default:
		}

		data, ok := c.transport.Recv()
		if !ok {
			time.Sleep(recvPollInterval)
			continue
		}

		if len(data) >= 3 && data[0] == uds.NegativeResponseSID {
			nrc := uds.ResponseCode(data[2])
			echoedSID := data[1]

			if nrc == uds.NRCResponsePending {
				if !deadline.Stop() {
					<-deadline.C
				}
				deadline.Reset(c.options.ResponsePendingTimeout)
				c.log.Debug().Hex("sid", []byte{echoedSID}).Msg("response pending, extending deadline")
				continue
			}

			udsErr := &UDSError{ServiceID: echoedSID, NRC: nrc}
			if svc, found := c.registry.ByRequestID(echoedSID); found {
				udsErr.Expected = svc.IsNegativeResponseSupported(nrc)
				if !udsErr.Expected {
					c.log.Warn().
						Str("service", svc.Name).
						Str("nrc", nrc.Name()).
						Msg("negative response code not expected for this service")
				}
			}
			return nil, udsErr
		}

		if len(data) > 0 && data[0] != expectedResponseSID {
			return nil, fmt.Errorf("response SID mismatch: want 0x%02X, got 0x%02X", expectedResponseSID, data[0])
		}
		return data, nil
	}
}
