package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer mocks model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	ln, _ := args.Get(0).(net.Listener)
	return ln, args.Error(1)
}
