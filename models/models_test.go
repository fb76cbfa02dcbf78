package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "Users", User{}.TableName())
	assert.Equal(t, "user_car", UserCar{}.TableName())
	assert.Equal(t, "Cars", Car{}.TableName())
	assert.Equal(t, "Tunings", Tuning{}.TableName())
	assert.Equal(t, "Maintenances", Maintenance{}.TableName())
	assert.Equal(t, "FuelEfficiencies", FuelEfficiency{}.TableName())
	assert.Equal(t, "Accidents", Accident{}.TableName())
	assert.Equal(t, "PeriodicInspection", PeriodicInspection{}.TableName())
}

func TestDate_JSON(t *testing.T) {
	t.Run("round trips as YYYY-MM-DD", func(t *testing.T) {
		var tuning Tuning
		require.NoError(t, json.Unmarshal([]byte(`{"car_id":1,"tuning_name":"exhaust","tuning_date":"2024-03-09","tuning_description":"titanium"}`), &tuning))

		assert.Equal(t, NewDate(2024, time.March, 9), tuning.TuningDate)

		data, err := json.Marshal(tuning)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"tuning_date":"2024-03-09"`)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20240309`), &d))
	})
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    Date
		wantErr bool
	}{
		{"time value", time.Date(2023, time.December, 1, 15, 4, 5, 0, time.Local), NewDate(2023, time.December, 1), false},
		{"bytes", []byte("2023-12-01"), NewDate(2023, time.December, 1), false},
		{"datetime string", "2023-12-01 00:00:00", NewDate(2023, time.December, 1), false},
		{"nil", nil, Date{}, false},
		{"garbage", "yesterday", Date{}, true},
		{"unsupported type", 42, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2024, time.January, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", v)
}

func TestUser_JSONMarshaling(t *testing.T) {
	user := User{
		UserID:       3,
		UserEmail:    "driver@example.com",
		UserName:     "driver",
		UserPassword: "secret",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	// Verify the password is never serialized
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "user_password")
	assert.Contains(t, string(data), `"user_email":"driver@example.com"`)
}

func TestCar_JSONMarshaling(t *testing.T) {
	car := Car{CarID: 7, CarName: "Civic", CarMileage: 12000, CarIsSmoked: true}

	data, err := json.Marshal(car)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(7), decoded["car_id"])
	assert.Equal(t, "Civic", decoded["car_name"])
	assert.Equal(t, true, decoded["car_issmoked"])
	assert.Nil(t, decoded["car_image_url"])
	assert.NotContains(t, decoded, "created_at")
}

func TestFuelEfficiency_TotalCost(t *testing.T) {
	fe := FuelEfficiency{FeAmount: 40, FeUnitPrice: 1.5}
	assert.InDelta(t, 60.0, fe.TotalCost(), 0.0001)
}

func TestPeriodicInspection_IsDue(t *testing.T) {
	next := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	pi := PeriodicInspection{PiNextDate: next}

	assert.False(t, pi.IsDue(next.Add(-time.Hour)))
	assert.True(t, pi.IsDue(next))
	assert.True(t, pi.IsDue(next.Add(24*time.Hour)))
}
