package api

import (
	"errors"
	"net/http"

	"github.com/carelink/hospital-booking/internal/notification"
)

type notificationsResponse struct {
	Items  []notification.Item `json:"items"`
	Unread int                 `json:"unread"`
}

func listNotificationsHandler(feed notification.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := feed.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		unread, err := feed.UnreadCount(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if items == nil {
			items = []notification.Item{}
		}

		writeJSON(w, http.StatusOK, notificationsResponse{Items: items, Unread: unread})
	}
}

func markNotificationReadHandler(feed notification.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := feed.MarkRead(r.Context(), id); err != nil {
			if errors.Is(err, notification.ErrNotificationNotFound) {
				writeError(w, http.StatusNotFound, "notification_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func markAllNotificationsReadHandler(feed notification.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := feed.MarkAllRead(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
