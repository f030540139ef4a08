package service

import (
	"github.com/MKhiriev/sqledu-client/internal/api"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/notify"
	"github.com/MKhiriev/sqledu-client/internal/store"
)

type ClientServices struct {
	SessionService ClientSessionService
}

func NewClientServices(
	endpoints *api.API,
	credentials store.CredentialStore,
	notifier notify.Notifier,
	navigator notify.Navigator,
	log *logger.Logger,
) *ClientServices {
	return &ClientServices{
		SessionService: NewClientSessionService(endpoints, credentials, notifier, navigator, log),
	}
}
