package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-mining-api/internal/models"
)

func TestTicketService_Create(t *testing.T) {
	tickets := new(MockTicketRepository)
	service := NewTicketService(tickets, new(MockNotificationRepository))
	ctx := context.Background()

	tickets.On("Create", ctx, 7, "Çekim gecikti", models.PriorityMedium).
		Return(&models.Ticket{ID: 5, UserID: 7, Status: models.TicketOpen}, nil)
	tickets.On("AddMessage", ctx, 5, 7, false, "Talebim 3 gündür bekliyor").
		Return(&models.TicketMessage{ID: 1, TicketID: 5}, nil)

	ticket, err := service.Create(ctx, 7, &models.CreateTicketRequest{Subject: "Çekim gecikti", Message: "Talebim 3 gündür bekliyor"})

	require.NoError(t, err)
	assert.Len(t, ticket.Messages, 1)
	tickets.AssertExpectations(t)
}

func TestTicketService_Get_Ownership(t *testing.T) {
	ctx := context.Background()
	ticket := &models.Ticket{ID: 5, UserID: 7, Status: models.TicketOpen}

	t.Run("başka kullanıcı göremez", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		service := NewTicketService(tickets, new(MockNotificationRepository))
		tickets.On("GetByID", ctx, 5).Return(ticket, nil)

		_, err := service.Get(ctx, &models.User{ID: 8, Role: models.RoleUser}, 5)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin görebilir", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		service := NewTicketService(tickets, new(MockNotificationRepository))
		tickets.On("GetByID", ctx, 5).Return(ticket, nil)
		tickets.On("ListMessages", ctx, 5).Return([]*models.TicketMessage{{ID: 1}, {ID: 2}}, nil)

		got, err := service.Get(ctx, &models.User{ID: 1, Role: models.RoleAdmin}, 5)
		require.NoError(t, err)
		assert.Len(t, got.Messages, 2)
	})
}

func TestTicketService_Reply(t *testing.T) {
	ctx := context.Background()

	t.Run("admin yanıtı answered yapar ve bildirim gönderir", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		notifications := new(MockNotificationRepository)
		service := NewTicketService(tickets, notifications)

		tickets.On("GetByID", ctx, 5).Return(&models.Ticket{ID: 5, UserID: 7, Subject: "Çekim", Status: models.TicketOpen}, nil)
		tickets.On("AddMessage", ctx, 5, 1, true, "İnceliyoruz").Return(&models.TicketMessage{ID: 3, IsAdmin: true}, nil)
		tickets.On("UpdateStatus", ctx, 5, models.TicketAnswered).Return(nil)
		notifications.On("Create", ctx, 7, models.NotifyTicketReply, mock.Anything, mock.Anything).Return(nil)

		msg, err := service.Reply(ctx, &models.User{ID: 1, Role: models.RoleAdmin}, 5, &models.TicketReplyRequest{Message: "İnceliyoruz"})
		require.NoError(t, err)
		assert.True(t, msg.IsAdmin)
		tickets.AssertExpectations(t)
		notifications.AssertExpectations(t)
	})

	t.Run("kapalı ticket'a yanıt yazılamaz", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		service := NewTicketService(tickets, new(MockNotificationRepository))
		tickets.On("GetByID", ctx, 5).Return(&models.Ticket{ID: 5, UserID: 7, Status: models.TicketClosed}, nil)

		_, err := service.Reply(ctx, &models.User{ID: 7, Role: models.RoleUser}, 5, &models.TicketReplyRequest{Message: "Merhaba"})
		assert.ErrorIs(t, err, ErrTicketClosed)
		tickets.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTicketService_SetStatus_Invalid(t *testing.T) {
	service := NewTicketService(new(MockTicketRepository), new(MockNotificationRepository))

	err := service.SetStatus(context.Background(), 5, "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
