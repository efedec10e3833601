package service

import (
	"testing"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prescriptionStoreStub struct {
	created *models.Prescription
}

func (s *prescriptionStoreStub) CreatePrescription(prescription *models.Prescription) error {
	prescription.ID = 1
	s.created = prescription
	return nil
}

func (s *prescriptionStoreStub) GetPrescriptionByID(id uint) (*models.Prescription, error) {
	if s.created == nil {
		return nil, repository.ErrPrescriptionNotFound
	}
	return s.created, nil
}

func (s *prescriptionStoreStub) ListPrescriptionsByPatientID(patientID uint, offset, limit int) ([]models.Prescription, int64, error) {
	return nil, 0, nil
}

type medicineReaderStub struct {
	medicines    []models.Medicine
	interactions []models.DrugInteraction
	lookedUp     [][]string
}

func (s *medicineReaderStub) GetMedicinesByIDs(ids []uint) ([]models.Medicine, error) {
	return s.medicines, nil
}

func (s *medicineReaderStub) FindInteractions(genericNames []string) ([]models.DrugInteraction, error) {
	s.lookedUp = append(s.lookedUp, genericNames)
	return s.interactions, nil
}

type patientReaderStub struct {
	patient *models.Patient
}

func (s *patientReaderStub) GetPatientByID(id uint) (*models.Patient, error) {
	if s.patient == nil {
		return nil, repository.ErrPatientNotFound
	}
	return s.patient, nil
}

func newTestPrescriptionService(prescriptions *prescriptionStoreStub, medicines *medicineReaderStub, patients *patientReaderStub) *PrescriptionService {
	return NewPrescriptionService(prescriptions, medicines, patients, &auditStub{})
}

func TestCreatePrescription_InteractionWarning(t *testing.T) {
	medicines := &medicineReaderStub{
		medicines: []models.Medicine{
			{ID: 1, Name: "Coumadin", GenericName: "Warfarin"},
			{ID: 2, Name: "Disprin", GenericName: "Aspirin"},
		},
		interactions: []models.DrugInteraction{
			{DrugA: "warfarin", DrugB: "aspirin", Severity: "severe", Description: "increased bleeding risk"},
		},
	}
	svc := newTestPrescriptionService(&prescriptionStoreStub{}, medicines, &patientReaderStub{patient: &models.Patient{ID: 5}})

	result, err := svc.CreatePrescription(&PrescriptionRequest{
		PatientID: 5,
		Items: []PrescriptionItemRequest{
			{MedicineID: 1, Dosage: "5mg", Frequency: "od"},
			{MedicineID: 2, Dosage: "75mg", Frequency: "od"},
		},
	}, 2)

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningInteraction, result.Warnings[0].Type)
	assert.Equal(t, "severe", result.Warnings[0].Severity)
	assert.Contains(t, result.Warnings[0].Message, "increased bleeding risk")

	// interaction lookup keys are lowercased generic names
	require.Len(t, medicines.lookedUp, 1)
	assert.Equal(t, []string{"warfarin", "aspirin"}, medicines.lookedUp[0])

	// warnings never block: the prescription is still saved
	require.NotNil(t, result.Prescription)
	assert.Equal(t, uint(1), result.Prescription.ID)
	assert.Len(t, result.Prescription.Items, 2)
}

func TestCreatePrescription_MissingMedicine(t *testing.T) {
	medicines := &medicineReaderStub{
		medicines: []models.Medicine{{ID: 1, Name: "Coumadin"}},
	}
	svc := newTestPrescriptionService(&prescriptionStoreStub{}, medicines, &patientReaderStub{patient: &models.Patient{ID: 5}})

	_, err := svc.CreatePrescription(&PrescriptionRequest{
		PatientID: 5,
		Items: []PrescriptionItemRequest{
			{MedicineID: 1},
			{MedicineID: 99},
		},
	}, 2)

	assert.EqualError(t, err, "one or more medicines not found")
}

func TestSafetyCheck_AllergyMatch(t *testing.T) {
	svc := newTestPrescriptionService(&prescriptionStoreStub{}, &medicineReaderStub{}, &patientReaderStub{})

	patient := &models.Patient{ID: 5, Allergies: "Penicillin, dust"}
	warnings, err := svc.SafetyCheck(patient, []models.Medicine{
		{ID: 1, Name: "Amoxil", GenericName: "Amoxicillin-Penicillin"},
	})

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningAllergy, warnings[0].Type)
	assert.Equal(t, "severe", warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "Amoxil")
}

func TestSafetyCheck_SingleMedicineSkipsInteractionLookup(t *testing.T) {
	medicines := &medicineReaderStub{}
	svc := newTestPrescriptionService(&prescriptionStoreStub{}, medicines, &patientReaderStub{})

	warnings, err := svc.SafetyCheck(&models.Patient{ID: 5}, []models.Medicine{
		{ID: 1, Name: "Paracetamol"},
	})

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, medicines.lookedUp)
}

func TestInteractionKey_PrefersGenericName(t *testing.T) {
	assert.Equal(t, "ibuprofen", interactionKey(models.Medicine{Name: "Brufen", GenericName: "Ibuprofen"}))
	assert.Equal(t, "brufen", interactionKey(models.Medicine{Name: "Brufen"}))
}

func TestSplitAllergies(t *testing.T) {
	assert.Nil(t, splitAllergies(""))
	assert.Equal(t, []string{"penicillin", "latex"}, splitAllergies(" Penicillin ,LATEX, "))
}
