package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/repository/specification"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/pkg/sandbox"

	"github.com/google/uuid"
)

const (
	roomCodeLength   = 6
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeAttempts = 8
)

// EditorLanguages is what the room page offers in its language picker.
var EditorLanguages = []string{sandbox.Python, sandbox.Java, sandbox.Cpp}

type IRoomService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	Join(ctx context.Context, req *dto.JoinRoomRequest) (*dto.RoomResponse, error)
	Show(ctx context.Context, name string) (*dto.ShowRoomResponse, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type roomService struct {
	uowFactory unitofwork.RepositoryFactory
	codeGen    func() string
}

func NewRoomService(uowFactory unitofwork.RepositoryFactory) IRoomService {
	return &roomService{
		uowFactory: uowFactory,
		codeGen:    GenerateRoomCode,
	}
}

// GenerateRoomCode returns a random code of uppercase letters and digits.
func GenerateRoomCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}

func (s *roomService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	language := req.Language
	if language == "" {
		language = sandbox.DefaultLanguage
	}

	var name string
	for attempt := 0; attempt < roomCodeAttempts; attempt++ {
		candidate := s.codeGen()
		taken, err := uow.RoomRepository().Count(ctx, specification.ByName{Name: candidate})
		if err != nil {
			return nil, err
		}
		if taken == 0 {
			name = candidate
			break
		}
	}
	if name == "" {
		return nil, ErrRoomCodeExhausted
	}

	room := entity.Room{
		Id:        uuid.New(),
		Name:      name,
		Language:  language,
		CreatorId: &userId,
		CreatedAt: time.Now(),
	}
	if err := uow.RoomRepository().Create(ctx, &room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	return toRoomResponse(&room), nil
}

func (s *roomService) Join(ctx context.Context, req *dto.JoinRoomRequest) (*dto.RoomResponse, error) {
	room, err := s.find(ctx, req.RoomCode)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Show(ctx context.Context, name string) (*dto.ShowRoomResponse, error) {
	room, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.ShowRoomResponse{
		RoomResponse: *toRoomResponse(room),
		Languages:    EditorLanguages,
	}, nil
}

func (s *roomService) Exists(ctx context.Context, name string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.RoomRepository().Count(ctx, specification.ByName{Name: name})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *roomService) find(ctx context.Context, name string) (*entity.Room, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func toRoomResponse(room *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		Id:        room.Id,
		Name:      room.Name,
		Language:  room.Language,
		CreatedAt: room.CreatedAt,
	}
}
